package ai

import (
	"strings"

	"honeytrap-lab/pkg/logger"
)

// Verdict is the outcome of a single classification tier
type Verdict int

const (
	// VerdictUnavailable means the tier could not produce a decision
	VerdictUnavailable Verdict = iota
	VerdictNegative
	VerdictPositive
)

// Labels a trained model may emit for the positive class
var positiveLabels = map[string]bool{
	"scam":  true,
	"spam":  true,
	"fraud": true,
	"1":     true,
}

// Keyword tier vocabulary. Substring match on lowered text.
var scamKeywords = []string{
	"bank", "verify", "blocked", "lottery", "winner", "prize", "urgent",
	"credit card", "kyc", "update", "otp", "pin", "cvv", "expiry",
	"cbi", "police", "customs", "narcotics", "seized", "arrest", "warrant",
	"electricity", "disconnect", "meter", "job", "task", "prepaid",
	"youtube", "review", "fedex", "courier", "parcel",
}

// ScamClassifier decides whether a message is part of a scam. The trained
// model runs first; the keyword tier catches everything the model misses
// or cannot score.
type ScamClassifier struct {
	model  *TextModel
	logger *logger.Logger
}

// NewScamClassifier creates a classifier. A nil model is allowed and
// degrades to keyword matching only.
func NewScamClassifier(model *TextModel, log *logger.Logger) *ScamClassifier {
	return &ScamClassifier{
		model:  model,
		logger: log.WithComponent("scam-classifier"),
	}
}

// IsScam runs the tiers in order. Only a positive verdict short-circuits;
// an unavailable or negative model verdict still consults the keywords.
func (s *ScamClassifier) IsScam(text string) bool {
	if s.modelVerdict(text) == VerdictPositive {
		return true
	}
	return s.keywordVerdict(text) == VerdictPositive
}

// HasModel reports whether the trained tier is loaded
func (s *ScamClassifier) HasModel() bool {
	return s.model != nil
}

func (s *ScamClassifier) modelVerdict(text string) Verdict {
	if s.model == nil {
		return VerdictUnavailable
	}
	label, err := s.model.Predict(text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("model prediction failed")
		return VerdictUnavailable
	}
	if positiveLabels[strings.ToLower(label)] {
		return VerdictPositive
	}
	return VerdictNegative
}

func (s *ScamClassifier) keywordVerdict(text string) Verdict {
	lowered := strings.ToLower(text)
	for _, kw := range scamKeywords {
		if strings.Contains(lowered, kw) {
			return VerdictPositive
		}
	}
	return VerdictNegative
}
