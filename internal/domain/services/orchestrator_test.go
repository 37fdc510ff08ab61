package services

import (
	"context"
	"testing"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services/ai"
	"honeytrap-lab/internal/domain/services/session"
	"honeytrap-lab/pkg/logger"
)

// newTestOrchestrator builds a fully offline pipeline: no model, no LLM,
// callback deliveries dropped for lack of a URL.
func newTestOrchestrator(t *testing.T) (*Orchestrator, *session.Store) {
	t.Helper()
	log := logger.NewDefault()

	extractor := ai.NewEntityExtractor(log)
	sessions := session.NewStore()
	callbacks := NewCallbackService(&CallbackConfig{WorkerCount: 1, QueueSize: 8}, extractor, sessions, nil, log)
	t.Cleanup(callbacks.Stop)

	orch := NewOrchestrator(
		ai.NewScamClassifier(nil, log),
		ai.NewPersonaRouter(nil, log),
		ai.NewReplyGenerator(nil, log),
		extractor,
		ai.NewTranscriber(log),
		sessions,
		callbacks,
		log,
	)
	return orch, sessions
}

func TestHandleMessageDisengagesFromBenign(t *testing.T) {
	orch, sessions := newTestOrchestrator(t)

	reply := orch.HandleMessage(context.Background(), &models.AnalyzeRequest{
		SessionID: "s1",
		Message:   models.Message{Sender: models.SenderScammer, Text: "Hi, want to grab coffee later?"},
	})

	if reply != disengageReply {
		t.Errorf("reply = %q, want disengage line", reply)
	}
	if sessions.Count() != 0 {
		t.Error("benign conversations must not create sessions")
	}

	stats := orch.Stats()
	if stats.TotalTurns != 1 || stats.ScamTurns != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestHandleMessageEngagesScam(t *testing.T) {
	orch, sessions := newTestOrchestrator(t)

	reply := orch.HandleMessage(context.Background(), &models.AnalyzeRequest{
		SessionID: "s1",
		Message:   models.Message{Sender: models.SenderScammer, Text: "Your bank account is blocked, verify KYC now"},
	})

	if reply == disengageReply || reply == "" {
		t.Fatalf("expected in-character reply, got %q", reply)
	}

	state, ok := sessions.Get("s1")
	if !ok {
		t.Fatal("session must be created for scam conversations")
	}
	if state.Persona != ai.PersonaGrandma {
		t.Errorf("persona = %q, want grandma for a banking scam", state.Persona)
	}
	if state.TurnCount != 1 {
		t.Errorf("turnCount = %d", state.TurnCount)
	}
}

func TestHandleMessageKeepsPersonaAcrossTurns(t *testing.T) {
	orch, sessions := newTestOrchestrator(t)
	ctx := context.Background()

	orch.HandleMessage(ctx, &models.AnalyzeRequest{
		SessionID: "s1",
		Message:   models.Message{Sender: models.SenderScammer, Text: "Your bank account is blocked"},
	})
	first, _ := sessions.Get("s1")

	// Second turn reads like a lottery pitch but the persona is already fixed
	orch.HandleMessage(ctx, &models.AnalyzeRequest{
		SessionID: "s1",
		Message:   models.Message{Sender: models.SenderScammer, Text: "Also you won a lottery prize"},
		ConversationHistory: []models.Message{
			{Sender: models.SenderScammer, Text: "Your bank account is blocked"},
			{Sender: models.SenderUser, Text: "Which bank is this?"},
		},
	})
	second, _ := sessions.Get("s1")

	if second.Persona != first.Persona {
		t.Errorf("persona changed across turns: %q -> %q", first.Persona, second.Persona)
	}
	if second.TurnCount != 3 {
		t.Errorf("turnCount = %d, want 3", second.TurnCount)
	}
	if second.QuestionsAsked != 1 {
		t.Errorf("questionsAsked = %d, want 1", second.QuestionsAsked)
	}
}

func TestHandleMessageHistoryForcesEngagement(t *testing.T) {
	orch, _ := newTestOrchestrator(t)

	// Current text is harmless but the conversation is already underway
	reply := orch.HandleMessage(context.Background(), &models.AnalyzeRequest{
		SessionID: "s1",
		Message:   models.Message{Sender: models.SenderScammer, Text: "ok tell me tomorrow"},
		ConversationHistory: []models.Message{
			{Sender: models.SenderScammer, Text: "Your bank account is blocked"},
		},
	})

	if reply == disengageReply {
		t.Error("engaged conversations must never disengage")
	}
}

func TestHandleMessageRecordsRedFlags(t *testing.T) {
	orch, sessions := newTestOrchestrator(t)

	orch.HandleMessage(context.Background(), &models.AnalyzeRequest{
		SessionID: "s1",
		Message:   models.Message{Sender: models.SenderScammer, Text: "URGENT: share your bank OTP at http://evil.in now"},
	})

	state, _ := sessions.Get("s1")
	want := map[string]bool{"Urgency": true, "OTP Request": true, "Suspicious Link": true, "Unsolicited Contact": true}
	for _, flag := range state.RedFlags {
		delete(want, flag)
	}
	if len(want) != 0 {
		t.Errorf("missing red flags %v in %v", want, state.RedFlags)
	}
}

func TestHandleMessageCountsElicitation(t *testing.T) {
	orch, sessions := newTestOrchestrator(t)
	ctx := context.Background()

	orch.HandleMessage(ctx, &models.AnalyzeRequest{
		SessionID: "s1",
		Message:   models.Message{Sender: models.SenderScammer, Text: "verify your bank account and send me your phone number"},
	})
	state, _ := sessions.Get("s1")
	if state.ElicitationAttempts != 1 {
		t.Errorf("elicitationAttempts = %d, want 1", state.ElicitationAttempts)
	}
}
