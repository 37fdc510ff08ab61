package models

// Intelligence holds every entity category extracted from conversation text.
// All slices are sorted and deduplicated; absent categories are empty, never nil.
type Intelligence struct {
	PhoneNumbers       []string `json:"phoneNumbers"`
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	EmailAddresses     []string `json:"emailAddresses"`
	CreditCards        []string `json:"creditCards"`
	BitcoinAddresses   []string `json:"bitcoinAddresses"`
	TelegramIDs        []string `json:"telegramIds"`
	TrackingNumbers    []string `json:"trackingNumbers"`
	IDs                []string `json:"ids"`
	AadharNumbers      []string `json:"aadharNumbers"`
	PANNumbers         []string `json:"panNumbers"`
	IFSCCodes          []string `json:"ifscCodes"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// HasCritical reports whether any directly actionable financial intelligence
// was captured
func (i *Intelligence) HasCritical() bool {
	return len(i.BankAccounts) > 0 || len(i.UPIIDs) > 0 || len(i.PhishingLinks) > 0
}

// Total returns the number of extracted items across all categories
func (i *Intelligence) Total() int {
	return len(i.PhoneNumbers) + len(i.BankAccounts) + len(i.UPIIDs) +
		len(i.PhishingLinks) + len(i.EmailAddresses) + len(i.CreditCards) +
		len(i.BitcoinAddresses) + len(i.TelegramIDs) + len(i.TrackingNumbers) +
		len(i.IDs) + len(i.AadharNumbers) + len(i.PANNumbers) +
		len(i.IFSCCodes) + len(i.SuspiciousKeywords)
}

// ReportIntelligence is the subset of categories carried on the final
// callback payload. Identity documents and keyword hits stay internal.
type ReportIntelligence struct {
	PhoneNumbers     []string `json:"phoneNumbers"`
	BankAccounts     []string `json:"bankAccounts"`
	UPIIDs           []string `json:"upiIds"`
	PhishingLinks    []string `json:"phishingLinks"`
	EmailAddresses   []string `json:"emailAddresses"`
	CreditCards      []string `json:"creditCards"`
	BitcoinAddresses []string `json:"bitcoinAddresses"`
	TelegramIDs      []string `json:"telegramIds"`
	TrackingNumbers  []string `json:"trackingNumbers"`
	IDs              []string `json:"ids"`
}

// Report converts the full extraction into the callback subset
func (i *Intelligence) Report() ReportIntelligence {
	return ReportIntelligence{
		PhoneNumbers:     i.PhoneNumbers,
		BankAccounts:     i.BankAccounts,
		UPIIDs:           i.UPIIDs,
		PhishingLinks:    i.PhishingLinks,
		EmailAddresses:   i.EmailAddresses,
		CreditCards:      i.CreditCards,
		BitcoinAddresses: i.BitcoinAddresses,
		TelegramIDs:      i.TelegramIDs,
		TrackingNumbers:  i.TrackingNumbers,
		IDs:              i.IDs,
	}
}

// CallbackPayload is the final intelligence report posted to the
// evaluation endpoint once a conversation qualifies
type CallbackPayload struct {
	SessionID                 string             `json:"sessionId"`
	ScamDetected              bool               `json:"scamDetected"`
	TotalMessagesExchanged    int                `json:"totalMessagesExchanged"`
	EngagementDurationSeconds int                `json:"engagementDurationSeconds"`
	ExtractedIntelligence     ReportIntelligence `json:"extractedIntelligence"`
	AgentNotes                string             `json:"agentNotes"`
	ScamType                  string             `json:"scamType"`
	ConfidenceLevel           float64            `json:"confidenceLevel"`
}
