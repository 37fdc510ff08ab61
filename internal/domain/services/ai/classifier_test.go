package ai

import (
	"testing"

	"honeytrap-lab/pkg/logger"
)

func TestIsScamKeywordTier(t *testing.T) {
	c := NewScamClassifier(nil, logger.NewDefault())

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bank fraud", "Your bank account will be blocked, verify now", true},
		{"digital arrest", "This is CBI, there is a warrant against you", true},
		{"courier", "Your FedEx parcel is held at customs", true},
		{"benign", "Are we still meeting for lunch tomorrow?", false},
		{"case insensitive", "SHARE YOUR OTP IMMEDIATELY", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsScam(tt.text); got != tt.want {
				t.Errorf("IsScam(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsScamModelCatchesNonKeywordText(t *testing.T) {
	clfPath, vecPath := writeModelArtifacts(t, `{
		"vocabulary": {"inheritance": 0, "weather": 1},
		"idf": [1.0, 1.0]
	}`, `{
		"classes": ["ham", "scam"],
		"coef": [[3.0, -2.0]],
		"intercept": [-0.1]
	}`)
	model, err := LoadTextModel(clfPath, vecPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := NewScamClassifier(model, logger.NewDefault())

	// No keyword in the vocabulary tier matches this, only the model does
	if !c.IsScam("claim your inheritance today") {
		t.Error("expected model tier to flag the message")
	}
	if c.IsScam("lovely weather this morning") {
		t.Error("expected benign message to pass")
	}
}

func TestIsScamKeywordsBackstopNegativeModel(t *testing.T) {
	// Model that scores everything negative
	clfPath, vecPath := writeModelArtifacts(t, `{
		"vocabulary": {"anything": 0},
		"idf": [1.0]
	}`, `{
		"classes": ["ham", "scam"],
		"coef": [[-5.0]],
		"intercept": [-5.0]
	}`)
	model, err := LoadTextModel(clfPath, vecPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := NewScamClassifier(model, logger.NewDefault())

	// A negative model verdict must not silence the keyword tier
	if !c.IsScam("share your OTP to unblock the account") {
		t.Error("keyword tier must still run after a negative model verdict")
	}
}

func TestHasModel(t *testing.T) {
	if NewScamClassifier(nil, logger.NewDefault()).HasModel() {
		t.Error("nil model must report HasModel false")
	}
}
