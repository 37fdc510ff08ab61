package services

import "testing"

func TestInferScamType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"digital arrest", "CBI officer here, digital arrest warrant issued", "Digital Arrest"},
		{"courier", "Your DHL parcel is stuck, pay customs duty", "Courier Scam"},
		{"utility", "Electricity will be disconnected tonight, pay the bill", "Utility Scam"},
		{"kyc", "Update KYC or lose access", "KYC Scam"},
		{"job", "Urgent hiring, work from home, great salary", "Job Scam"},
		{"loan", "Pre-approved instant loan just for you", "Loan Scam"},
		{"upi", "Get cashback on your UPI ID now", "UPI Fraud"},
		{"lottery", "Congratulations you won the lucky draw", "Lottery Scam"},
		{"bank", "Your account blocked, share OTP", "Bank Fraud"},
		{"phishing", "Amazon order confirmed, click here", "Phishing"},
		{"sextortion", "Pay in bitcoin or your private videos go public", "Sextortion"},
		{"unknown", "See you at dinner tonight", ScamTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferScamType(tt.text); got != tt.want {
				t.Errorf("InferScamType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestInferScamTypeOrdering(t *testing.T) {
	// Sextortion outranks Digital Arrest when both match
	got := InferScamType("police demand bitcoin payment")
	if got != "Sextortion" {
		t.Errorf("got %q, want Sextortion", got)
	}

	// Digital Arrest outranks Courier when both match
	got = InferScamType("police found drugs in your parcel")
	if got != "Digital Arrest" {
		t.Errorf("got %q, want Digital Arrest", got)
	}
}
