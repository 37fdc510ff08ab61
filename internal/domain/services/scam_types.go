package services

import "strings"

// ScamTypeUnknown is reported when no category keywords match
const ScamTypeUnknown = "Unknown"

// scamTypeRules is evaluated top to bottom and the first matching rule
// wins, so more specific categories must stay above the generic ones.
var scamTypeRules = []struct {
	Name     string
	Keywords []string
}{
	{"Sextortion", []string{"bitcoin", "crypto", "blackmail", "video", "extortion", "private videos"}},
	{"Digital Arrest", []string{"police", "cbi", "arrest", "warrant", "court", "narcotics", "trafficking", "digital arrest"}},
	{"Courier Scam", []string{"parcel", "courier", "dhl", "customs", "duty", "held at customs"}},
	{"Utility Scam", []string{"electricity", "power", "bill", "disconnect", "unpaid bill", "power cut"}},
	{"KYC Scam", []string{"kyc", "aadhaar", "pan card", "update kyc", "kyc update"}},
	{"Job Scam", []string{"job", "hiring", "work from home", "salary", "earn money", "employment", "urgent hiring"}},
	{"Loan Scam", []string{"loan", "credit", "loan approved", "pre-approved", "instant loan", "emi"}},
	{"UPI Fraud", []string{"upi", "cashback", "paytm", "phonepe", "google pay", "upi id"}},
	{"Lottery Scam", []string{"lottery", "winner", "prize", "won", "lucky draw", "congratulations you won"}},
	{"Bank Fraud", []string{"bank", "sbi", "account compromised", "account blocked", "share otp", "unauthorized transaction"}},
	{"Phishing", []string{"amazon", "flipkart", "order confirmed", "delivery", "click here", "claim prize", "iphone won"}},
}

// InferScamType categorizes a message by keyword evidence
func InferScamType(text string) string {
	lowered := strings.ToLower(text)
	for _, rule := range scamTypeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return rule.Name
			}
		}
	}
	return ScamTypeUnknown
}
