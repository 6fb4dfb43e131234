package verification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func fixedNowVerifier(agencyCNPJ string, maxAgeDays int, now time.Time) *RuleVerifier {
	v := NewRuleVerifier(agencyCNPJ, maxAgeDays)
	v.now = func() time.Time { return now }
	return v
}

func TestRuleVerifierAcceptsCompliantProof(t *testing.T) {
	now := time.Now()
	uploaded := now.Add(-24 * time.Hour)
	v := fixedNowVerifier("12.345.678/0001-90", 30, now)

	result, err := v.Verify(context.Background(), Request{
		PaymentID:       "1",
		ProofURL:        "https://cdn.example.com/proofs/receipt.png",
		ExpectedAmount:  decimal.NewFromInt(3500),
		ExpectedCNPJ:    "12345678000190",
		ProofUploadedAt: &uploaded,
	})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected acceptance, got %+v", result)
	}
	if result.Confidence != 1 {
		t.Fatalf("expected confidence 1, got %f", result.Confidence)
	}
	if result.Message != "proof accepted" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestRuleVerifierConfidenceIsPassedFraction(t *testing.T) {
	v := fixedNowVerifier("12.345.678/0001-90", 30, time.Now())

	// bad format and mismatched CNPJ: 2 of 4 checks pass
	result, err := v.Verify(context.Background(), Request{
		ProofURL:       "https://cdn.example.com/proofs/receipt.exe",
		ExpectedAmount: decimal.NewFromInt(100),
		ExpectedCNPJ:   "99.999.999/0001-99",
	})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if result.Verified {
		t.Fatalf("expected rejection")
	}
	if result.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %f", result.Confidence)
	}
	if !strings.Contains(result.Message, "cnpj") || !strings.Contains(result.Message, "format") {
		t.Fatalf("expected failed checks named, got %q", result.Message)
	}
}

func TestRuleVerifierCNPJNormalization(t *testing.T) {
	v := fixedNowVerifier("12.345.678/0001-90", 0, time.Now())

	result, err := v.Verify(context.Background(), Request{
		ProofURL:       "https://cdn.example.com/receipt.pdf",
		ExpectedAmount: decimal.NewFromInt(100),
		ExpectedCNPJ:   "12345678000190",
	})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !result.Details.CNPJMatch {
		t.Fatalf("punctuation differences must not fail the CNPJ check")
	}
}

func TestRuleVerifierEmptyExpectedCNPJOptsOut(t *testing.T) {
	v := fixedNowVerifier("", 0, time.Now())
	result, err := v.Verify(context.Background(), Request{
		ProofURL:       "https://cdn.example.com/receipt.jpg",
		ExpectedAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !result.Details.CNPJMatch {
		t.Fatalf("empty expected CNPJ must pass the check")
	}
}

func TestRuleVerifierExpectedCNPJWithoutAgencyFails(t *testing.T) {
	v := fixedNowVerifier("", 0, time.Now())
	result, err := v.Verify(context.Background(), Request{
		ProofURL:       "https://cdn.example.com/receipt.jpg",
		ExpectedAmount: decimal.NewFromInt(100),
		ExpectedCNPJ:   "12345678000190",
	})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if result.Details.CNPJMatch {
		t.Fatalf("an expected CNPJ cannot match an unconfigured agency")
	}
}

func TestRuleVerifierDateBounds(t *testing.T) {
	now := time.Now()
	v := fixedNowVerifier("", 30, now)

	future := now.Add(time.Hour)
	result, err := v.Verify(context.Background(), Request{
		ProofURL:        "https://cdn.example.com/receipt.png",
		ExpectedAmount:  decimal.NewFromInt(100),
		ProofUploadedAt: &future,
	})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if result.Details.DateValid {
		t.Fatalf("future upload time must be invalid")
	}

	stale := now.AddDate(0, 0, -31)
	result, err = v.Verify(context.Background(), Request{
		ProofURL:        "https://cdn.example.com/receipt.png",
		ExpectedAmount:  decimal.NewFromInt(100),
		ProofUploadedAt: &stale,
	})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if result.Details.DateValid {
		t.Fatalf("proof older than the age bound must be invalid")
	}

	// nil upload time cannot be falsified
	result, err = v.Verify(context.Background(), Request{
		ProofURL:       "https://cdn.example.com/receipt.png",
		ExpectedAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !result.Details.DateValid {
		t.Fatalf("nil upload time must count as valid")
	}
}

func TestRuleVerifierFormatAllowList(t *testing.T) {
	cases := map[string]bool{
		"https://cdn.example.com/a.jpg":             true,
		"https://cdn.example.com/a.jpeg":            true,
		"https://cdn.example.com/a.png":             true,
		"https://cdn.example.com/a.pdf":             true,
		"https://cdn.example.com/a.PDF":             true,
		"https://cdn.example.com/a.exe":             false,
		"https://cdn.example.com/a":                 false,
		"":                                          false,
		"https://cdn.example.com/a.png?sig=abc.def": true, // query string does not change the extension
	}
	for proofURL, want := range cases {
		if got := proofFormatValid(proofURL); got != want {
			t.Fatalf("proofFormatValid(%q) = %v, want %v", proofURL, got, want)
		}
	}
}

func TestRuleVerifierCanceledContext(t *testing.T) {
	v := NewRuleVerifier("", 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := v.Verify(ctx, Request{ProofURL: "https://cdn.example.com/a.png"}); err == nil {
		t.Fatalf("expected context error")
	}
}
