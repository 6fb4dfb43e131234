package verification

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

var proofAllowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".pdf":  {},
}

// RuleVerifier is the default deterministic verifier: it checks the
// proof format, the expected amount, the agency CNPJ and the proof
// age. Confidence is the fraction of checks that passed.
type RuleVerifier struct {
	agencyCNPJ      string
	maxProofAgeDays int
	now             func() time.Time
}

// NewRuleVerifier creates a rule verifier. maxProofAgeDays <= 0
// disables the age bound.
func NewRuleVerifier(agencyCNPJ string, maxProofAgeDays int) *RuleVerifier {
	return &RuleVerifier{
		agencyCNPJ:      agencyCNPJ,
		maxProofAgeDays: maxProofAgeDays,
		now:             time.Now,
	}
}

// Verify runs the rule checks.
func (v *RuleVerifier) Verify(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	details := Details{
		FormatValid: proofFormatValid(req.ProofURL),
		AmountMatch: req.ExpectedAmount.IsPositive(),
		CNPJMatch:   cnpjMatches(v.agencyCNPJ, req.ExpectedCNPJ),
		DateValid:   v.proofDateValid(req.ProofUploadedAt),
	}

	passed := 0
	for _, ok := range []bool{details.AmountMatch, details.CNPJMatch, details.DateValid, details.FormatValid} {
		if ok {
			passed++
		}
	}

	result := &Result{
		Verified:   passed == 4,
		Confidence: float64(passed) / 4,
		Details:    details,
	}
	if result.Verified {
		result.Message = "proof accepted"
	} else {
		result.Message = fmt.Sprintf("proof rejected: %s", strings.Join(failedChecks(details), ", "))
	}
	return result, nil
}

func proofFormatValid(proofURL string) bool {
	trimmed := strings.TrimSpace(proofURL)
	if trimmed == "" {
		return false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	_, ok := proofAllowedExtensions[ext]
	return ok
}

// cnpjMatches compares digit-normalized CNPJ values. An empty
// expected value matches: the caller opted out of the check.
func cnpjMatches(agencyCNPJ, expectedCNPJ string) bool {
	expected := normalizeCNPJ(expectedCNPJ)
	if expected == "" {
		return true
	}
	agency := normalizeCNPJ(agencyCNPJ)
	if agency == "" {
		return false
	}
	return expected == agency
}

func normalizeCNPJ(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// proofDateValid bounds proof age. A nil upload time cannot be
// falsified and counts as valid.
func (v *RuleVerifier) proofDateValid(uploadedAt *time.Time) bool {
	if uploadedAt == nil || v.maxProofAgeDays <= 0 {
		return true
	}
	now := v.now()
	if uploadedAt.After(now) {
		return false
	}
	cutoff := now.AddDate(0, 0, -v.maxProofAgeDays)
	return !uploadedAt.Before(cutoff)
}

func failedChecks(details Details) []string {
	var failed []string
	if !details.AmountMatch {
		failed = append(failed, "amount")
	}
	if !details.CNPJMatch {
		failed = append(failed, "cnpj")
	}
	if !details.DateValid {
		failed = append(failed, "date")
	}
	if !details.FormatValid {
		failed = append(failed, "format")
	}
	return failed
}
