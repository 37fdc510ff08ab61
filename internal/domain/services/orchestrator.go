package services

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services/ai"
	"honeytrap-lab/internal/domain/services/session"
	"honeytrap-lab/pkg/logger"
)

// disengageReply is returned for conversations that never look like a scam
const disengageReply = "I don't think I am interested. Thank you."

// elicitationKeywords signal the counterpart is fishing for contact or
// payment details
var elicitationKeywords = []string{
	"phone", "number", "contact", "email", "account", "upi", "id", "send me",
}

// Orchestrator runs the per-turn pipeline: transcription, scam decision,
// extraction, session bookkeeping, reply generation, and report scheduling.
type Orchestrator struct {
	classifier  *ai.ScamClassifier
	router      *ai.PersonaRouter
	replies     *ai.ReplyGenerator
	extractor   *ai.EntityExtractor
	transcriber *ai.Transcriber
	sessions    *session.Store
	callbacks   *CallbackService
	logger      *logger.Logger

	totalTurns atomic.Int64
	scamTurns  atomic.Int64
}

// OrchestratorStats is a point-in-time snapshot of processing counters
type OrchestratorStats struct {
	TotalTurns       int64 `json:"totalTurns"`
	ScamTurns        int64 `json:"scamTurns"`
	ActiveSessions   int   `json:"activeSessions"`
	ReportsDelivered int64 `json:"reportsDelivered"`
}

// NewOrchestrator wires the conversation pipeline together
func NewOrchestrator(
	classifier *ai.ScamClassifier,
	router *ai.PersonaRouter,
	replies *ai.ReplyGenerator,
	extractor *ai.EntityExtractor,
	transcriber *ai.Transcriber,
	sessions *session.Store,
	callbacks *CallbackService,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier:  classifier,
		router:      router,
		replies:     replies,
		extractor:   extractor,
		transcriber: transcriber,
		sessions:    sessions,
		callbacks:   callbacks,
		logger:      log.WithComponent("orchestrator"),
	}
}

// HandleMessage processes one conversation turn and returns the agent reply
func (o *Orchestrator) HandleMessage(ctx context.Context, req *models.AnalyzeRequest) string {
	o.totalTurns.Add(1)
	log := o.logger.WithSession(req.SessionID)

	// Voice-only turns resolve through transcription before anything else
	text := req.Message.Text
	if text == "" && req.Message.AudioBase64 != "" {
		text = o.transcriber.Transcribe(req.Message.AudioBase64)
		req.Message.Text = text
	}

	// A conversation with history is already engaged; keep playing along
	// even if the current message alone looks harmless
	isScam := o.classifier.IsScam(text) || len(req.ConversationHistory) > 0

	fullText := o.joinConversation(text, req.ConversationHistory)
	entities := o.extractor.Extract(fullText)

	if !isScam {
		log.Info().Msg("message not classified as scam, disengaging")
		return disengageReply
	}

	o.scamTurns.Add(1)
	state := o.touchSession(ctx, req, text, log)

	reply := o.replies.Generate(ctx, req.ConversationHistory, text, entities, state.Persona, state.Language)

	o.callbacks.Evaluate(req.SessionID, req.ConversationHistory, req.Message, true, entities)

	log.Info().
		Str("persona", state.Persona).
		Str("language", state.Language).
		Int("turn", state.TurnCount).
		Int("entities", entities.Total()).
		Msg("turn processed")

	return reply
}

// touchSession creates the session on first contact and folds the current
// turn into its counters. All counters are monotonic.
func (o *Orchestrator) touchSession(ctx context.Context, req *models.AnalyzeRequest, text string, log *logger.Logger) session.State {
	if _, ok := o.sessions.Get(req.SessionID); !ok {
		persona, language := o.router.Route(ctx, text)
		created := o.sessions.CreateIfAbsent(req.SessionID, session.State{
			Persona:   persona,
			Language:  language,
			StartedAt: time.Now(),
		})
		log.Info().
			Str("persona", created.Persona).
			Str("language", created.Language).
			Msg("session created")
	}

	lowered := strings.ToLower(text)

	// Questions asked counts "?" in our own prior messages; recomputing
	// from history can only undercount, so keep the running max
	questions := 0
	for _, msg := range req.ConversationHistory {
		if (msg.Sender == models.SenderUser || msg.Sender == models.SenderAgent) && strings.Contains(msg.Text, "?") {
			questions++
		}
	}

	state, _ := o.sessions.Update(req.SessionID, func(s *session.State) {
		s.TurnCount = len(req.ConversationHistory) + 1
		if questions > s.QuestionsAsked {
			s.QuestionsAsked = questions
		}

		if strings.Contains(lowered, "urgent") || strings.Contains(lowered, "immediately") {
			s.AddRedFlag("Urgency")
		}
		if strings.Contains(lowered, "otp") || strings.Contains(lowered, "pin") {
			s.AddRedFlag("OTP Request")
		}
		if strings.Contains(lowered, "http") || strings.Contains(lowered, "link") || strings.Contains(lowered, ".com") {
			s.AddRedFlag("Suspicious Link")
		}
		if s.TurnCount <= 2 {
			s.AddRedFlag("Unsolicited Contact")
		}

		for _, kw := range elicitationKeywords {
			if strings.Contains(lowered, kw) {
				s.ElicitationAttempts++
				break
			}
		}
	})

	return state
}

func (o *Orchestrator) joinConversation(current string, history []models.Message) string {
	parts := make([]string, 0, len(history)+1)
	parts = append(parts, current)
	for _, m := range history {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, " ")
}

// Stats returns processing counters for the stats endpoint
func (o *Orchestrator) Stats() OrchestratorStats {
	return OrchestratorStats{
		TotalTurns:       o.totalTurns.Load(),
		ScamTurns:        o.scamTurns.Load(),
		ActiveSessions:   o.sessions.Count(),
		ReportsDelivered: o.callbacks.Delivered(),
	}
}
