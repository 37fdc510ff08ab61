package ai

import (
	"context"
	"strings"

	"honeytrap-lab/pkg/logger"
)

// PersonaRouter picks the persona and language for a new conversation.
// The LLM strategy runs first when credentials are configured; any failure
// or unparseable response falls back to the marker heuristic as a whole.
type PersonaRouter struct {
	llm    *LLMClient
	logger *logger.Logger
}

var hinglishMarkers = []string{
	"bhai", "bha", "haan", "haanji", "kya", "kyu", "nahi", "nahin",
	"sir ji", "beta", "paise", "paisa", "upi", "karo", "kar do", "jaldi",
}

// Evaluated top to bottom; the first matching group wins
var personaRules = []struct {
	persona string
	markers []string
}{
	{PersonaSkeptic, []string{"cbi", "police", "cyber", "arrest", "court", "customs", "narcotics", "parcel", "legal", "section"}},
	{PersonaStudent, []string{"lottery", "loan", "job", "offer", "task", "telegram", "earn", "salary", "reward"}},
	{PersonaGrandma, []string{"kyc", "bank", "account", "otp", "blocked", "freeze", "pan", "aadhar", "ifsc", "electricity", "bill", "anydesk", "teamviewer", "virus"}},
}

const routingPrompt = "You are a routing engine for a honeypot AI system. " +
	"Based on the user's message, select the best persona and language.\n\n" +
	"Available Personas:\n" +
	"- 'grandma': Best for bank/KYC/utility scams. Acts confused, fails technical steps.\n" +
	"- 'student': Best for lottery/job/loan scams. Acts eager but broke.\n" +
	"- 'skeptic': Best for police/CBI/digital arrest scams. Demands authorization.\n" +
	"- 'parent': Best for general spam. Acts distracted and chaotic.\n\n" +
	"Languages:\n" +
	"- 'english': Standard English\n" +
	"- 'hinglish': Roman Hindi + English mix (e.g., 'Haan bhai', 'Arre sir')\n\n" +
	"Instructions:\n" +
	"1. Analyze the message for scam type indicators\n" +
	"2. Choose the persona that would best waste the scammer's time\n" +
	"3. Detect if message is in Hinglish (Roman Hindi) or English\n" +
	"4. Reply ONLY with format: 'persona|language'\n" +
	"Example: 'student|hinglish' or 'skeptic|english'."

// NewPersonaRouter creates a persona router. llm may be nil.
func NewPersonaRouter(llm *LLMClient, log *logger.Logger) *PersonaRouter {
	return &PersonaRouter{
		llm:    llm,
		logger: log.WithComponent("persona-router"),
	}
}

// Route returns the persona key and language for the opening message
func (r *PersonaRouter) Route(ctx context.Context, text string) (string, string) {
	if !r.llm.Enabled() {
		return r.heuristic(text)
	}

	response, err := r.llm.Generate(ctx, routingPrompt,
		[]ChatMessage{{Role: "user", Text: "Message: " + text}},
		GenerateOpts{Temperature: 0.1, MaxTokens: 20})
	if err != nil {
		r.logger.Warn().Err(err).Msg("llm routing failed")
		return r.heuristic(text)
	}

	persona, language, ok := parseRouting(response)
	if !ok {
		r.logger.Warn().Str("response", response).Msg("unparseable routing response")
		return r.heuristic(text)
	}

	r.logger.Debug().Str("persona", persona).Str("language", language).Msg("routed by llm")
	return persona, language
}

// parseRouting parses a strict 'persona|language' response. Anything short
// of both parts resolving is rejected so the heuristic decides instead.
func parseRouting(response string) (string, string, bool) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(response)), "|")
	if len(parts) < 2 {
		return "", "", false
	}

	persona := ""
	for _, key := range PersonaOrder {
		if strings.Contains(parts[0], key) {
			persona = key
			break
		}
	}
	if persona == "" {
		return "", "", false
	}

	language := ""
	if strings.Contains(parts[1], "hinglish") || strings.Contains(parts[1], "hindi") {
		language = LanguageHinglish
	} else if strings.Contains(parts[1], "english") {
		language = LanguageEnglish
	}
	if language == "" {
		return "", "", false
	}

	return persona, language, true
}

func (r *PersonaRouter) heuristic(text string) (string, string) {
	lowered := strings.ToLower(text)

	language := LanguageEnglish
	for _, m := range hinglishMarkers {
		if strings.Contains(lowered, m) {
			language = LanguageHinglish
			break
		}
	}

	for _, rule := range personaRules {
		for _, m := range rule.markers {
			if strings.Contains(lowered, m) {
				return rule.persona, language
			}
		}
	}
	return PersonaParent, language
}
