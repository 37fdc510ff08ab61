package ai

import (
	"honeytrap-lab/pkg/logger"
)

// Transcriber resolves voice payloads to text. No speech-to-text backend is
// wired yet, so audio-only turns produce an empty transcript and the rest of
// the pipeline treats them as empty messages.
type Transcriber struct {
	logger *logger.Logger
}

// NewTranscriber creates a transcriber
func NewTranscriber(log *logger.Logger) *Transcriber {
	return &Transcriber{
		logger: log.WithComponent("transcriber"),
	}
}

// Transcribe returns the text content of a base64-encoded audio payload
func (t *Transcriber) Transcribe(audioBase64 string) string {
	if audioBase64 == "" {
		return ""
	}
	t.logger.Warn().Int("payload_bytes", len(audioBase64)).Msg("audio transcription not available, treating as empty")
	return ""
}
