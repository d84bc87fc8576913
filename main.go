package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"medscan_gateway/bootstrap"
	"medscan_gateway/config"
	"medscan_gateway/middleware"
	"medscan_gateway/pkg/logging"
	"medscan_gateway/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}
	logging.Init()

	cfg := config.LoadConfig()

	application, err := bootstrap.NewApp(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			logging.Logger.Error("shutdown failed", "error", err)
		}
	}()

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxFileSize),
	})
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	authGate := middleware.AuthGate(cfg, application.Infrastructure.L1Cache)

	routes.RegisterScanRoutes(app, application.Handlers.ScanHandler, authGate)
	routes.RegisterChatRoutes(app, application.Handlers.ChatHandler, authGate)
	routes.RegisterDoctorRoutes(app, application.Handlers.DoctorHandler, authGate)
	routes.RegisterConsentRoutes(app, application.Handlers.ConsentHandler)
	routes.SetupWebSocketRoutes(app, application.Handlers.WSHandler)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "UP"})
	})

	port := cfg.HttpPort
	if port == "" {
		port = "3000"
	}
	log.Println("Server running on http://localhost:" + port)
	log.Fatal(app.Listen(":" + port))
}
