package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfirmation_AllRulesPass(t *testing.T) {
	items := []LoadDetail{
		{Line: 1, StatusCode: DetailLoaded},
		{Line: 2, StatusCode: DetailMarkedOff, MarkoffReason: "short on stock"},
	}
	result := ValidateConfirmation(" 12345 ", items)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateConfirmation_TrailerRules(t *testing.T) {
	tests := []struct {
		name    string
		trailer string
		wantErr string
	}{
		{"empty", "", "Trailer number is required"},
		{"whitespace only", "   ", "Trailer number is required"},
		{"non numeric", "TRL-42", "Trailer number must be numeric"},
		{"embedded space", "12 34", "Trailer number must be numeric"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ValidateConfirmation(tc.trailer, nil)
			assert.False(t, result.IsValid)
			assert.Contains(t, result.Errors, tc.wantErr)
		})
	}
}

func TestValidateConfirmation_OpenLinesCounted(t *testing.T) {
	items := []LoadDetail{
		{Line: 1, StatusCode: DetailOpen},
		{Line: 2, StatusCode: DetailOpen},
		{Line: 3, StatusCode: DetailLoaded},
	}
	result := ValidateConfirmation("123", items)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, `2 line(s) still marked as "Open"`)
}

func TestValidateConfirmation_MarkedOffNeedsReason(t *testing.T) {
	items := []LoadDetail{
		{Line: 1, StatusCode: DetailMarkedOff, MarkoffReason: ""},
	}
	result := ValidateConfirmation("123", items)
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "missing reason")

	// Whitespace-only reasons count as missing too.
	items[0].MarkoffReason = "  "
	result = ValidateConfirmation("123", items)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "1 marked-off line(s) missing reason")
}

func TestValidateConfirmation_ErrorsAccumulate(t *testing.T) {
	items := []LoadDetail{
		{Line: 1, StatusCode: DetailOpen},
		{Line: 2, StatusCode: DetailMarkedOff, MarkoffReason: ""},
	}
	result := ValidateConfirmation("", items)
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 3)
}

func TestValidateConfirmation_NoItems(t *testing.T) {
	result := ValidateConfirmation("777", nil)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}
