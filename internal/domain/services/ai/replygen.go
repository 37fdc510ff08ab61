package ai

import (
	"context"
	"strings"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

// ReplyGenerator produces the honeypot's next message in character.
// Works fully offline with canned persona replies when no LLM is configured.
type ReplyGenerator struct {
	llm    *LLMClient
	logger *logger.Logger
}

const hinglishInstruction = "\nIMPORTANT: The user is speaking Hinglish. Reply in Hinglish (Roman Hindi + English mix). " +
	"Use natural Indian conversational style (e.g., 'Haan bhai', 'Arre sir', 'Nahi ho raha'). " +
	"Do NOT translate technical terms (keep 'bank', 'link', 'app' in English)."

const fallbackReply = "I didn't catch that. Could you say it again?"

// NewReplyGenerator creates a reply generator. llm may be nil.
func NewReplyGenerator(llm *LLMClient, log *logger.Logger) *ReplyGenerator {
	return &ReplyGenerator{
		llm:    llm,
		logger: log.WithComponent("reply-generator"),
	}
}

// Generate produces the agent's reply for the current turn. Never fails:
// LLM errors degrade to a neutral stall line.
func (g *ReplyGenerator) Generate(ctx context.Context, history []models.Message, current string, known *models.Intelligence, personaKey, language string) string {
	if !g.llm.Enabled() {
		return g.offlineReply(known, personaKey, language)
	}

	persona := GetPersona(personaKey)

	langInstruction := "\nReply in standard English."
	if language == LanguageHinglish {
		langInstruction = hinglishInstruction
	}

	strategyInstruction := ""
	if missing := missingTargets(known); len(missing) > 0 {
		strategyInstruction = "\nGOAL: You still need to collect: " + strings.Join(missing, ", ") + ". Invent a pretext to ask for them."
	}

	system := persona.Prompt + " " + langInstruction + " " + strategyInstruction

	messages := make([]ChatMessage, 0, len(history)+1)
	for _, msg := range history {
		role := "model"
		if msg.Sender == models.SenderScammer {
			role = "user"
		}
		messages = append(messages, ChatMessage{Role: role, Text: msg.Text})
	}
	messages = append(messages, ChatMessage{Role: "user", Text: current})

	reply, err := g.llm.Generate(ctx, system, messages, GenerateOpts{Temperature: 0.8, MaxTokens: 150})
	if err != nil {
		g.logger.WithPersona(personaKey).Error().Err(err).Msg("reply generation failed")
		return fallbackReply
	}
	return strings.TrimSpace(reply)
}

// missingTargets names the intelligence still worth eliciting
func missingTargets(known *models.Intelligence) []string {
	var missing []string
	if known == nil || len(known.BankAccounts) == 0 {
		missing = append(missing, "Bank Account Number")
	}
	if known == nil || len(known.UPIIDs) == 0 {
		missing = append(missing, "UPI ID (ask for 'app' or 'ID')")
	}
	if known == nil || len(known.PhishingLinks) == 0 {
		missing = append(missing, "Payment Link (ask for a 'website')")
	}
	return missing
}

// offlineReply returns a canned in-character line that still pushes for the
// missing intelligence
func (g *ReplyGenerator) offlineReply(known *models.Intelligence, personaKey, language string) string {
	var missing []string
	if known == nil || len(known.BankAccounts) == 0 {
		missing = append(missing, "bank account")
	}
	if known == nil || len(known.UPIIDs) == 0 {
		missing = append(missing, "UPI ID")
	}
	if known == nil || len(known.PhishingLinks) == 0 {
		missing = append(missing, "link")
	}

	ask := "details"
	if len(missing) > 0 {
		if len(missing) > 2 {
			missing = missing[:2]
		}
		ask = strings.Join(missing, " and ")
	}

	if language == LanguageHinglish {
		switch personaKey {
		case PersonaStudent:
			return "Bhai mujhe samajh nahi aaya. " + ask + " bhejo na, phir main dekhta hoon."
		case PersonaSkeptic:
			return "Sir, pehle aap apna official ID aur " + ask + " share karo. Company policy hai."
		case PersonaParent:
			return "Arre ruk jao, bacche chillaa rahe hain. " + ask + " dobara bhej do."
		}
		return "Beta, mujhe phone me nahi mil raha. " + ask + " ek baar phir bhej do."
	}

	switch personaKey {
	case PersonaStudent:
		return "Bro I'm interested but I have 0 balance. Send your " + ask + " and explain again."
	case PersonaSkeptic:
		return "Before we proceed, share your official authorization and the " + ask + "."
	case PersonaParent:
		return "Hold on—I'm busy right now. Can you resend the " + ask + "?"
	}
	return "I am not good with these things. Please send the " + ask + " again."
}
