package ai

import (
	"reflect"
	"testing"

	"honeytrap-lab/pkg/logger"
)

func newTestExtractor() *EntityExtractor {
	return NewEntityExtractor(logger.NewDefault())
}

func TestExtractEmptyText(t *testing.T) {
	e := newTestExtractor()

	result := e.Extract("   ")
	if result.Total() != 0 {
		t.Fatalf("expected no entities, got %d", result.Total())
	}
	if result.PhoneNumbers == nil || result.BankAccounts == nil || result.UPIIDs == nil {
		t.Fatal("slices must be present even when empty")
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := newTestExtractor()
	text := "Call 9876543210, pay scammer@paytm, visit http://fake-bank.com/verify urgently"

	first := e.Extract(text)
	second := e.Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("extraction must be deterministic for identical input")
	}
}

func TestExtractPhoneNormalization(t *testing.T) {
	e := newTestExtractor()

	// Same number with and without country code collapses to one entry
	result := e.Extract("Call +91 9876543210 or 9876543210 now")
	if len(result.PhoneNumbers) != 1 {
		t.Fatalf("expected 1 phone after dedup, got %v", result.PhoneNumbers)
	}
	if result.PhoneNumbers[0] != "+91 9876543210" {
		t.Fatalf("expected first surface form kept, got %q", result.PhoneNumbers[0])
	}
}

func TestExtractUSPhone(t *testing.T) {
	e := newTestExtractor()

	result := e.Extract("Call our helpline +1 (555) 123-4567 today")
	if len(result.PhoneNumbers) != 1 {
		t.Fatalf("expected 1 phone, got %v", result.PhoneNumbers)
	}
}

func TestExtractPhoneFormatPrecedence(t *testing.T) {
	e := newTestExtractor()

	// Both spellings normalize to the same digits; the US format runs
	// before toll-free, so its surface form survives dedup
	result := e.Extract("dial 1-800-555-1234 and +1 800 555 1234")
	if !reflect.DeepEqual(result.PhoneNumbers, []string{"+1 800 555 1234"}) {
		t.Fatalf("expected the US surface form kept, got %v", result.PhoneNumbers)
	}
}

func TestExtractOverlappingPhoneFormats(t *testing.T) {
	e := newTestExtractor()

	// The bare 10-digit run and the full international string normalize
	// differently, so both are kept
	result := e.Extract("reach us on +12 8005551234")
	want := []string{"+12 8005551234", "8005551234"}
	if !reflect.DeepEqual(result.PhoneNumbers, want) {
		t.Fatalf("got %v, want %v", result.PhoneNumbers, want)
	}
}

func TestExtractBankAccountsFiltersPhones(t *testing.T) {
	e := newTestExtractor()

	result := e.Extract("Transfer to account 123456780 or call 9876543210")
	if !reflect.DeepEqual(result.BankAccounts, []string{"123456780"}) {
		t.Fatalf("expected only the account number, got %v", result.BankAccounts)
	}
}

func TestExtractBankAccountsFiltersPhoneSuperstrings(t *testing.T) {
	e := newTestExtractor()

	// An 11-digit run containing a recognized mobile number is a dialing
	// variant of the phone, not an account number
	result := e.Extract("call 9876543210 account 99876543210")
	if len(result.BankAccounts) != 0 {
		t.Fatalf("phone superstring must not be a bank account, got %v", result.BankAccounts)
	}
	if !reflect.DeepEqual(result.PhoneNumbers, []string{"9876543210"}) {
		t.Fatalf("expected the phone kept, got %v", result.PhoneNumbers)
	}
}

func TestExtractBankAccountsSkipsAadhaarLength(t *testing.T) {
	e := newTestExtractor()

	result := e.Extract("Share your number 123412341234 for verification")
	if len(result.BankAccounts) != 0 {
		t.Fatalf("12-digit runs must not be bank accounts, got %v", result.BankAccounts)
	}
	if len(result.AadharNumbers) != 1 {
		t.Fatalf("expected 1 aadhar match, got %v", result.AadharNumbers)
	}
}

func TestExtractCreditCards(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"visa with dashes", "card 4111-1111-1111-1111 expired", 1},
		{"mastercard spaced", "use 5500 0000 0000 0004 instead", 1},
		{"implausible prefix", "ref 1234 5678 9012 3456 noted", 0},
		{"all zeros", "test 0000 0000 0000 0000 entry", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text).CreditCards
			if len(got) != tt.want {
				t.Fatalf("got %v, want %d cards", got, tt.want)
			}
		})
	}
}

func TestExtractUPIProviderPreferred(t *testing.T) {
	e := newTestExtractor()

	// Provider-qualified handle present: generic matches are ignored
	result := e.Extract("Pay scammer.01@oksbi not me@randomword")
	if !reflect.DeepEqual(result.UPIIDs, []string{"scammer.01@oksbi"}) {
		t.Fatalf("expected provider handle only, got %v", result.UPIIDs)
	}
}

func TestExtractUPIGenericFallback(t *testing.T) {
	e := newTestExtractor()

	result := e.Extract("Send money to victim@fakepay right away")
	if !reflect.DeepEqual(result.UPIIDs, []string{"victim@fakepay"}) {
		t.Fatalf("expected generic fallback match, got %v", result.UPIIDs)
	}
}

func TestExtractLinksAndEmails(t *testing.T) {
	e := newTestExtractor()

	result := e.Extract("Click http://secure-verify.net/kyc or mail help@scamdesk.com")
	if len(result.PhishingLinks) != 1 {
		t.Fatalf("expected 1 link, got %v", result.PhishingLinks)
	}
	if len(result.EmailAddresses) != 1 || result.EmailAddresses[0] != "help@scamdesk.com" {
		t.Fatalf("expected the email address, got %v", result.EmailAddresses)
	}
}

func TestExtractShortUPILocalPart(t *testing.T) {
	e := newTestExtractor()

	result := e.Extract("URGENT: account blocked. Call 9876543210. UPI: x@paytm")
	if !reflect.DeepEqual(result.PhoneNumbers, []string{"9876543210"}) {
		t.Errorf("phones: got %v", result.PhoneNumbers)
	}
	if !reflect.DeepEqual(result.UPIIDs, []string{"x@paytm"}) {
		t.Errorf("upi: got %v", result.UPIIDs)
	}
	if len(result.BankAccounts) != 0 {
		t.Errorf("banks: got %v", result.BankAccounts)
	}
	if !result.HasCritical() {
		t.Error("payment handle must make the result critical")
	}
}

func TestExtractBankingScamMessage(t *testing.T) {
	e := newTestExtractor()

	text := "URGENT: Your SBI account is blocked! Verify KYC at http://sbi-verify.xyz/login " +
		"or call 9123456789. Pay fine to fraudster@okicici immediately."

	result := e.Extract(text)
	if len(result.PhoneNumbers) != 1 {
		t.Errorf("phones: got %v", result.PhoneNumbers)
	}
	if len(result.UPIIDs) != 1 {
		t.Errorf("upi: got %v", result.UPIIDs)
	}
	if len(result.PhishingLinks) != 1 {
		t.Errorf("links: got %v", result.PhishingLinks)
	}
	if !result.HasCritical() {
		t.Error("message with UPI and link must be critical")
	}
	keywords := result.SuspiciousKeywords
	if len(keywords) == 0 {
		t.Error("expected suspicious keywords flagged")
	}
}
