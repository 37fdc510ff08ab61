package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services/ai"
	"honeytrap-lab/internal/domain/services/session"
	"honeytrap-lab/pkg/logger"
)

type callbackReceiver struct {
	srv      *httptest.Server
	payloads chan models.CallbackPayload
}

func newCallbackReceiver(t *testing.T) *callbackReceiver {
	t.Helper()
	r := &callbackReceiver{payloads: make(chan models.CallbackPayload, 8)}
	r.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var p models.CallbackPayload
		if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
			t.Errorf("decode callback payload: %v", err)
		}
		if req.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", req.Header.Get("Content-Type"))
		}
		if req.Header.Get("X-Delivery-ID") == "" {
			t.Error("missing delivery id header")
		}
		r.payloads <- p
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(r.srv.Close)
	return r
}

func (r *callbackReceiver) wait(t *testing.T) models.CallbackPayload {
	t.Helper()
	select {
	case p := <-r.payloads:
		return p
	case <-time.After(3 * time.Second):
		t.Fatal("no callback delivered")
		return models.CallbackPayload{}
	}
}

func (r *callbackReceiver) expectNone(t *testing.T) {
	t.Helper()
	select {
	case p := <-r.payloads:
		t.Fatalf("unexpected callback for session %s", p.SessionID)
	case <-time.After(200 * time.Millisecond):
	}
}

func newTestCallbackService(t *testing.T, url string) *CallbackService {
	t.Helper()
	log := logger.NewDefault()
	svc := NewCallbackService(&CallbackConfig{
		URL:         url,
		WorkerCount: 1,
		QueueSize:   8,
		Timeout:     2 * time.Second,
	}, ai.NewEntityExtractor(log), session.NewStore(), nil, log)
	t.Cleanup(svc.Stop)
	return svc
}

func criticalIntel() *models.Intelligence {
	return &models.Intelligence{
		UPIIDs:        []string{"fraud@paytm"},
		PhishingLinks: []string{"http://fake.link/pay"},
	}
}

func TestEvaluateSkipsNonScam(t *testing.T) {
	rec := newCallbackReceiver(t)
	svc := newTestCallbackService(t, rec.srv.URL)

	svc.Evaluate("s1", nil, models.Message{Sender: models.SenderScammer, Text: "hello"}, false, criticalIntel())
	rec.expectNone(t)
}

func TestEvaluateSkipsShortNonCritical(t *testing.T) {
	rec := newCallbackReceiver(t)
	svc := newTestCallbackService(t, rec.srv.URL)

	svc.Evaluate("s1", nil, models.Message{Sender: models.SenderScammer, Text: "your account is blocked"}, true, &models.Intelligence{})
	rec.expectNone(t)
}

func TestEvaluateCriticalIntelReportsImmediately(t *testing.T) {
	rec := newCallbackReceiver(t)
	svc := newTestCallbackService(t, rec.srv.URL)

	svc.Evaluate("s1", nil, models.Message{
		Sender: models.SenderScammer,
		Text:   "Pay fine to fraud@paytm via http://fake.link/pay or face arrest by police",
	}, true, criticalIntel())

	p := rec.wait(t)
	if p.SessionID != "s1" {
		t.Errorf("sessionId = %q", p.SessionID)
	}
	if !p.ScamDetected {
		t.Error("scamDetected must be true")
	}
	if p.TotalMessagesExchanged != 1 {
		t.Errorf("totalMessagesExchanged = %d", p.TotalMessagesExchanged)
	}
	if p.ScamType != "Digital Arrest" {
		t.Errorf("scamType = %q", p.ScamType)
	}
	if len(p.ExtractedIntelligence.UPIIDs) != 1 || len(p.ExtractedIntelligence.PhishingLinks) != 1 {
		t.Errorf("intelligence not re-extracted: %+v", p.ExtractedIntelligence)
	}

	if svc.Delivered() != 1 {
		t.Errorf("delivered = %d", svc.Delivered())
	}
}

func TestEvaluateLongConversationReports(t *testing.T) {
	rec := newCallbackReceiver(t)
	svc := newTestCallbackService(t, rec.srv.URL)

	history := []models.Message{
		{Sender: models.SenderScammer, Text: "your electricity bill is unpaid"},
		{Sender: models.SenderUser, Text: "which bill?"},
		{Sender: models.SenderScammer, Text: "pay now or disconnect"},
	}
	svc.Evaluate("s2", history, models.Message{Sender: models.SenderScammer, Text: "last warning"}, true, &models.Intelligence{})

	p := rec.wait(t)
	if p.TotalMessagesExchanged != 4 {
		t.Errorf("totalMessagesExchanged = %d", p.TotalMessagesExchanged)
	}
	// Categorization looks at the current turn only
	if p.ScamType != ScamTypeUnknown {
		t.Errorf("scamType = %q, want %q", p.ScamType, ScamTypeUnknown)
	}
}

func TestPayloadDurationFloor(t *testing.T) {
	rec := newCallbackReceiver(t)
	svc := newTestCallbackService(t, rec.srv.URL)

	svc.Evaluate("s3", nil, models.Message{Sender: models.SenderScammer, Text: "send to fraud@paytm"}, true, criticalIntel())

	p := rec.wait(t)
	// One message, fresh session: floor is 180 plus the per-message bonus
	if p.EngagementDurationSeconds != 185 {
		t.Errorf("engagementDurationSeconds = %d, want 185", p.EngagementDurationSeconds)
	}
}

func TestPayloadConfidenceScalesWithEntities(t *testing.T) {
	rec := newCallbackReceiver(t)
	svc := newTestCallbackService(t, rec.srv.URL)

	svc.Evaluate("s4", nil, models.Message{Sender: models.SenderScammer, Text: "anything"}, true, criticalIntel())
	p := rec.wait(t)
	// 2 entities: 0.7 + 2*0.05
	if p.ConfidenceLevel != 0.8 {
		t.Errorf("confidenceLevel = %v, want 0.8", p.ConfidenceLevel)
	}
}

func TestPayloadAgentNotes(t *testing.T) {
	rec := newCallbackReceiver(t)
	svc := newTestCallbackService(t, rec.srv.URL)

	svc.Evaluate("s5", nil, models.Message{
		Sender: models.SenderScammer,
		Text:   "CBI arrest warrant, pay to fraud@paytm",
	}, true, criticalIntel())

	p := rec.wait(t)
	if !strings.HasPrefix(p.AgentNotes, "SCAM DETECTED: Digital Arrest.") {
		t.Errorf("agentNotes = %q", p.AgentNotes)
	}
	if !strings.Contains(p.AgentNotes, "1 UPI IDs") {
		t.Errorf("agentNotes should count extracted UPI IDs: %q", p.AgentNotes)
	}
}

func TestDeliverWithoutURLDrops(t *testing.T) {
	svc := newTestCallbackService(t, "")

	svc.Evaluate("s6", nil, models.Message{Sender: models.SenderScammer, Text: "pay fraud@paytm"}, true, criticalIntel())

	time.Sleep(200 * time.Millisecond)
	if svc.Delivered() != 0 {
		t.Errorf("delivered = %d, want 0", svc.Delivered())
	}
}
