package models

// Sender labels used by the message platform. The counterpart is always
// "scammer"; our side shows up as "user" or "agent" depending on channel.
const (
	SenderScammer = "scammer"
	SenderUser    = "user"
	SenderAgent   = "agent"
)

// Message represents a single message on a honeypot conversation
type Message struct {
	Sender      string `json:"sender"`
	Text        string `json:"text"`
	AudioBase64 string `json:"audioBase64,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"` // epoch millis
}

// Metadata carries channel information supplied by the platform
type Metadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// AnalyzeRequest is the inbound payload for a conversation turn
type AnalyzeRequest struct {
	SessionID           string    `json:"sessionId"`
	Message             Message   `json:"message"`
	ConversationHistory []Message `json:"conversationHistory,omitempty"`
	Metadata            Metadata  `json:"metadata,omitempty"`
}

// AnalyzeResponse is the reply envelope returned to the platform
type AnalyzeResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}
