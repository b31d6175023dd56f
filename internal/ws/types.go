package ws

const (
	// server - client
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// Message is the envelope of every frame sent to dashboard clients
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
