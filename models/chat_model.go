package models

// ChatMessage is one turn of the report conversation. The transcript is
// rendered client-side; the service stays stateless per turn.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "ai"
	Text string `json:"text"`
}

const (
	RoleUser = "user"
	RoleAI   = "ai"
)

type ChatReq struct {
	Message string `json:"message"`
}

type ChatRes struct {
	Response  string `json:"response"`
	HasReport bool   `json:"has_report"`
}

type ChatOpeningRes struct {
	Messages  []ChatMessage `json:"messages"`
	HasReport bool          `json:"has_report"`
}

// ChatBackendReq is the payload the model backend expects: one message
// plus whatever report string is currently stored, nothing more.
type ChatBackendReq struct {
	Message string `json:"message"`
	Report  string `json:"report"`
}

type ChatBackendRes struct {
	Response string `json:"response"`
}
