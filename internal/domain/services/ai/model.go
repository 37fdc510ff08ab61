package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// TextModel is a TF-IDF vectorizer plus a linear classifier, loaded from
// JSON artifacts exported at training time.
type TextModel struct {
	vocabulary map[string]int
	idf        []float64
	classes    []string
	coef       []float64
	intercept  float64
}

type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

type classifierArtifact struct {
	Classes   []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// Matches the vectorizer's training-time tokenization
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// LoadTextModel reads the classifier and vectorizer artifacts from disk
func LoadTextModel(classifierPath, vectorizerPath string) (*TextModel, error) {
	vecData, err := os.ReadFile(vectorizerPath)
	if err != nil {
		return nil, fmt.Errorf("reading vectorizer artifact: %w", err)
	}
	var vec vectorizerArtifact
	if err := json.Unmarshal(vecData, &vec); err != nil {
		return nil, fmt.Errorf("parsing vectorizer artifact: %w", err)
	}

	clfData, err := os.ReadFile(classifierPath)
	if err != nil {
		return nil, fmt.Errorf("reading classifier artifact: %w", err)
	}
	var clf classifierArtifact
	if err := json.Unmarshal(clfData, &clf); err != nil {
		return nil, fmt.Errorf("parsing classifier artifact: %w", err)
	}

	if len(vec.Vocabulary) == 0 || len(vec.IDF) == 0 {
		return nil, fmt.Errorf("vectorizer artifact is empty")
	}
	if len(clf.Classes) != 2 || len(clf.Coef) != 1 || len(clf.Intercept) != 1 {
		return nil, fmt.Errorf("classifier artifact is not a binary linear model")
	}
	if len(clf.Coef[0]) != len(vec.IDF) {
		return nil, fmt.Errorf("coefficient count %d does not match vocabulary size %d", len(clf.Coef[0]), len(vec.IDF))
	}
	for _, idx := range vec.Vocabulary {
		if idx < 0 || idx >= len(vec.IDF) {
			return nil, fmt.Errorf("vocabulary index %d out of range", idx)
		}
	}

	return &TextModel{
		vocabulary: vec.Vocabulary,
		idf:        vec.IDF,
		classes:    clf.Classes,
		coef:       clf.Coef[0],
		intercept:  clf.Intercept[0],
	}, nil
}

// Predict classifies one document and returns the class label
func (m *TextModel) Predict(text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("empty document")
	}

	counts := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if idx, ok := m.vocabulary[token]; ok {
			counts[idx]++
		}
	}

	// TF-IDF with L2 normalization, then the linear decision function
	var norm float64
	weights := make(map[int]float64, len(counts))
	for idx, tf := range counts {
		w := tf * m.idf[idx]
		weights[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
	}

	score := m.intercept
	for idx, w := range weights {
		if norm > 0 {
			w /= norm
		}
		score += m.coef[idx] * w
	}

	if score > 0 {
		return m.classes[1], nil
	}
	return m.classes[0], nil
}
