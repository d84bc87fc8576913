package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"medscan_gateway/config"
	"medscan_gateway/pkg/logging"
	"medscan_gateway/platform/cache"
)

const verdictTTL = 5 * time.Minute

var authHTTP = &http.Client{Timeout: 5 * time.Second}

type verifyResponse struct {
	UserID string `json:"user_id"`
}

// AuthGate asks the external identity provider whether the bearer token
// is a live session and caches the verdict. The provider's protocol is
// its own; this gate only consumes the verify endpoint.
func AuthGate(cfg *config.Config, verdicts *cache.L1CacheService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Sign-in required."})
		}

		// no provider configured: trust the dev header
		if cfg.AuthVerifyURL == "" {
			uid := c.Get("X-User-ID")
			if uid == "" {
				uid = token
			}
			c.Locals("user_id", uid)
			return c.Next()
		}

		if cached, ok := verdicts.Get("auth:" + token); ok {
			if uid, ok := cached.(string); ok {
				c.Locals("user_id", uid)
				return c.Next()
			}
		}

		uid, err := verifyToken(cfg.AuthVerifyURL, token)
		if err != nil {
			logging.Logger.Warn("token verification failed", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Sign-in required."})
		}

		verdicts.Set("auth:"+token, uid, verdictTTL)
		c.Locals("user_id", uid)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func verifyToken(verifyURL, token string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, verifyURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := authHTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fiber.NewError(fiber.StatusUnauthorized, "session rejected")
	}

	var parsed verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.UserID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "empty user")
	}
	return parsed.UserID, nil
}
