package ai

import (
	"regexp"
	"sort"
	"strings"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

// EntityExtractor pulls scam-relevant entities out of conversation text.
// All extraction is rule-based so results are deterministic for a given input.
type EntityExtractor struct {
	logger *logger.Logger
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Handles addressed to a known Indian payment provider. The generic
	// pattern below only runs when no provider-qualified handle is found.
	// Single-character local parts are valid handles.
	upiProviderPattern = regexp.MustCompile(`(?i)[a-zA-Z0-9.\-_]{1,256}@(?:oksbi|okaxis|okhdfcbank|okicici|okbob|paytm|phonepe|ybl|paypal|okbiz|upi|payzapp|bms|dmrc|ola|swiggy|zomato|amazon|google|sbi|axis|icici|hdfc|pnb|bob|kotak|idfc|yesbank|indus|union|canara|bandhan|federal|southindian|karur|cityunion|indianoverseas|saraswat|abhyuday|apnas|barodampay|cmsidfc|equitas|esaf|finobank|hsbc|jupiter|kbl|kmb|nsdl|purvanchal|rajasthan|tmb|uco|ujjivan|utbi)`)
	upiGenericPattern = regexp.MustCompile(`[a-zA-Z0-9.\-_]{1,256}@[a-zA-Z]{2,64}`)

	urlPattern = regexp.MustCompile(`(?i)(?:https?://|onion://|www\.)[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b(?:[-a-zA-Z0-9()@:%_\+.~#?&/=]*)`)

	// Each phone format runs as its own pass over the text and the
	// matches are concatenated in this order before dedup, so the
	// earlier format's surface form wins when two overlap.
	phoneIndianPattern   = regexp.MustCompile(`(?:\+91[\-\s]?)?\b[6-9]\d{9}\b`)
	phoneUSPattern       = regexp.MustCompile(`\+1[\-\s]?\(?\d{3}\)?[\-\s]?\d{3}[\-\s]?\d{4}`)
	phoneTollFreePattern = regexp.MustCompile(`(?:1?[\-\s]?)?800[\-\s]?\d{3}[\-\s]?\d{4}`)
	phoneIntlPattern     = regexp.MustCompile(`\+\d{1,3}[\-\s]?\d{6,12}`)

	phonePatterns = []*regexp.Regexp{
		phoneIndianPattern, phoneUSPattern, phoneTollFreePattern, phoneIntlPattern,
	}

	bankAccountPattern = regexp.MustCompile(`\b\d{9,18}\b`)
	creditCardPattern  = regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b|\b\d{16}\b`)

	bitcoinLegacyPattern = regexp.MustCompile(`\b[13][a-km-zA-HJ-NP-Z1-9]{25,34}\b`)
	bitcoinBech32Pattern = regexp.MustCompile(`\bbc1[a-zA-HJ-NP-Z0-9]{39,59}\b`)

	telegramPattern = regexp.MustCompile(`@\w{3,32}\b`)
	trackingPattern = regexp.MustCompile(`(?i)\b(?:DH|AMZ|UPS|FEDEX|1Z)[\s-]*\d{6,20}\b`)

	caseIDPattern  = regexp.MustCompile(`(?i)\b(?:TXN|ORD|ID|REF|CASE|EMP|CUS|EXT|SBI|AMZ|WIN|CB|LOAN|KYC|FRD|BILL)[\-\s]?[A-Z0-9]{4,20}\b`)
	orderIDPattern = regexp.MustCompile(`(?i)\b(?:ORDER|ORDERID|ORDER\s*NO|ORDER#|OID)[\s#-]*[A-Z0-9]{6,20}\b`)

	aadharPattern = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	panPattern    = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	ifscPattern   = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)

	nonDigitPattern = regexp.MustCompile(`\D`)
)

// suspiciousKeywords are flagged by case-insensitive substring match
var suspiciousKeywords = []string{
	"urgent", "verify", "block", "suspend", "kyc", "pan", "aadhar",
	"win", "lottery", "expired", "otp", "pin", "cvv", "expiry", "code",
	"cbi", "police", "customs", "drugs", "seized", "arrest", "warrant",
	"electricity", "bill", "disconnect", "prepaid", "task", "cashback",
	"account", "compromised", "fraud", "unauthorized", "transaction",
	"claim", "prize", "winner", "selected", "lucky", "offer", "limited",
}

// NewEntityExtractor creates a new entity extractor
func NewEntityExtractor(log *logger.Logger) *EntityExtractor {
	return &EntityExtractor{
		logger: log.WithComponent("entity-extractor"),
	}
}

// Extract runs every category over the given text. Slices in the result are
// sorted and deduplicated, and present even when empty.
func (e *EntityExtractor) Extract(text string) *models.Intelligence {
	result := &models.Intelligence{
		PhoneNumbers:       []string{},
		BankAccounts:       []string{},
		UPIIDs:             []string{},
		PhishingLinks:      []string{},
		EmailAddresses:     []string{},
		CreditCards:        []string{},
		BitcoinAddresses:   []string{},
		TelegramIDs:        []string{},
		TrackingNumbers:    []string{},
		IDs:                []string{},
		AadharNumbers:      []string{},
		PANNumbers:         []string{},
		IFSCCodes:          []string{},
		SuspiciousKeywords: []string{},
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	phones, phoneDigits := e.extractPhones(text)
	result.PhoneNumbers = phones
	result.BankAccounts = e.extractBankAccounts(text, phoneDigits)
	result.UPIIDs = e.extractUPIHandles(text)
	result.PhishingLinks = sortedSet(urlPattern.FindAllString(text, -1))
	result.EmailAddresses = sortedSet(emailPattern.FindAllString(text, -1))
	result.CreditCards = e.extractCreditCards(text)
	result.BitcoinAddresses = sortedSet(append(
		bitcoinLegacyPattern.FindAllString(text, -1),
		bitcoinBech32Pattern.FindAllString(text, -1)...))
	result.TelegramIDs = sortedSet(telegramPattern.FindAllString(text, -1))
	result.TrackingNumbers = sortedSet(trackingPattern.FindAllString(text, -1))
	result.IDs = sortedSet(append(
		caseIDPattern.FindAllString(text, -1),
		orderIDPattern.FindAllString(text, -1)...))
	result.AadharNumbers = sortedSet(aadharPattern.FindAllString(text, -1))
	result.PANNumbers = sortedSet(panPattern.FindAllString(text, -1))
	result.IFSCCodes = sortedSet(ifscPattern.FindAllString(text, -1))
	result.SuspiciousKeywords = e.extractKeywords(text)

	e.logger.Debug().Int("entities", result.Total()).Msg("extraction complete")
	return result
}

// extractPhones returns the deduplicated surface forms plus the digit
// strings of every kept phone, both as written and normalized, which the
// bank account filter needs
func (e *EntityExtractor) extractPhones(text string) ([]string, []string) {
	var matches []string
	for _, p := range phonePatterns {
		matches = append(matches, p.FindAllString(text, -1)...)
	}

	var surfaces []string
	var digits []string

	seen := make(map[string]bool)
	for _, match := range matches {
		raw := nonDigitPattern.ReplaceAllString(match, "")
		norm := raw
		// Bare local mobile numbers get the country prefix
		if len(norm) == 10 && norm[0] >= '6' && norm[0] <= '9' {
			norm = "91" + norm
		}
		if len(norm) < 10 || seen[norm] {
			continue
		}
		seen[norm] = true
		surfaces = append(surfaces, strings.TrimSpace(match))
		digits = append(digits, raw, norm)
	}

	return sortedSet(surfaces), digits
}

// extractBankAccounts collects 9-18 digit runs, skipping Aadhaar-length
// sequences and anything that is a fragment or extension of a phone number
func (e *EntityExtractor) extractBankAccounts(text string, phoneDigits []string) []string {
	var accounts []string
	for _, match := range bankAccountPattern.FindAllString(text, -1) {
		if len(match) == 12 {
			continue
		}
		if isPhoneFragment(match, phoneDigits) {
			continue
		}
		accounts = append(accounts, match)
	}
	return sortedSet(accounts)
}

func isPhoneFragment(digits string, phoneDigits []string) bool {
	for _, p := range phoneDigits {
		if strings.Contains(p, digits) || strings.Contains(digits, p) {
			return true
		}
	}
	return false
}

// extractUPIHandles prefers provider-qualified handles; the generic
// anything@word pattern is a fallback for when none are present
func (e *EntityExtractor) extractUPIHandles(text string) []string {
	matches := upiProviderPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		matches = upiGenericPattern.FindAllString(text, -1)
	}
	return sortedSet(matches)
}

// extractCreditCards keeps 16-digit candidates whose issuer prefix is
// plausible and which are not an all-zero placeholder
func (e *EntityExtractor) extractCreditCards(text string) []string {
	var cards []string
	for _, match := range creditCardPattern.FindAllString(text, -1) {
		digits := nonDigitPattern.ReplaceAllString(match, "")
		if len(digits) != 16 || digits == "0000000000000000" {
			continue
		}
		if !plausibleCardPrefix(digits) {
			continue
		}
		cards = append(cards, match)
	}
	return sortedSet(cards)
}

func plausibleCardPrefix(digits string) bool {
	switch digits[0] {
	case '4', '5': // Visa, Mastercard
		return true
	}
	switch digits[:2] {
	case "34", "37", "65", "60", "64": // Amex, Discover, RuPay
		return true
	}
	return digits[:4] == "6011"
}

func (e *EntityExtractor) extractKeywords(text string) []string {
	lowered := strings.ToLower(text)
	var hits []string
	for _, kw := range suspiciousKeywords {
		if strings.Contains(lowered, kw) {
			hits = append(hits, kw)
		}
	}
	return sortedSet(hits)
}

// sortedSet deduplicates and sorts, always returning a non-nil slice
func sortedSet(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
