package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var trailerNumberPattern = regexp.MustCompile(`^\d+$`)

// ConfirmationResult is the outcome of the confirmation precondition check.
// Errors holds every failed rule, not just the first one.
type ConfirmationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// ValidateConfirmation checks whether a load may be confirmed with the given
// trailer number and line items. All rules are evaluated and every failure is
// accumulated so the caller sees the complete list:
//
//   - the trailer number, after trimming, must be non-empty and digits only
//   - no line item may still be Open
//   - every Marked_Off line item must carry a non-empty reason
//
// The function is total and pure.
func ValidateConfirmation(trailerNo string, items []LoadDetail) ConfirmationResult {
	var errs []string

	trimmed := strings.TrimSpace(trailerNo)
	if trimmed == "" {
		errs = append(errs, "Trailer number is required")
	} else if !trailerNumberPattern.MatchString(trimmed) {
		errs = append(errs, "Trailer number must be numeric")
	}

	openCount := 0
	missingReason := 0
	for _, item := range items {
		if item.StatusCode == DetailOpen {
			openCount++
		}
		if item.StatusCode == DetailMarkedOff && strings.TrimSpace(item.MarkoffReason) == "" {
			missingReason++
		}
	}
	if openCount > 0 {
		errs = append(errs, fmt.Sprintf("%d line(s) still marked as \"Open\"", openCount))
	}
	if missingReason > 0 {
		errs = append(errs, fmt.Sprintf("%d marked-off line(s) missing reason", missingReason))
	}

	return ConfirmationResult{IsValid: len(errs) == 0, Errors: errs}
}
