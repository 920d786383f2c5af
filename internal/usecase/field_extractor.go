package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/billscan/backend/internal/domain"
)

// Compiled regex patterns for receipt field extraction
var (
	// Lines announcing the bill total
	totalKeywordPattern = regexp.MustCompile(`(?i)\b(total|total amount|total payable)\b`)

	// Lines worth keeping as the bill description
	descriptionKeywordPattern = regexp.MustCompile(`(?i)\b(security|maintenance)\b`)

	// Digits with optional thousands separators and 1-2 decimal digits
	amountPattern = regexp.MustCompile(`[\d,]+(?:\.\d{1,2})?`)
)

// currencyMarker is one of the symbols used to locate amounts in a line
type currencyMarker struct {
	symbol  string
	pattern *regexp.Regexp
}

// currencyMarkers is ordered by priority for the fallback scan: ₹, then RS, then $.
// RS also accepts "Rs" and "Rs." as printed on Indian bills, but only at the start
// of a word so that "Hours" or "MEMBERS" are not read as currency.
var currencyMarkers = []currencyMarker{
	{symbol: "₹", pattern: regexp.MustCompile(`₹`)},
	{symbol: "RS", pattern: regexp.MustCompile(`\b(?:RS|Rs)\.?`)},
	{symbol: "$", pattern: regexp.MustCompile(`\$`)},
}

// FieldExtractor pulls an amount and a description out of raw OCR text.
// It is stateless and safe for concurrent use.
type FieldExtractor struct {
	enableDebugLogging bool
}

// NewFieldExtractor creates a new field extractor
func NewFieldExtractor(enableDebugLogging bool) *FieldExtractor {
	return &FieldExtractor{
		enableDebugLogging: enableDebugLogging,
	}
}

// Extract runs the two-pass heuristic over the OCR text.
//
// Pass 1 walks every line: a line naming a total yields the amount from its first
// currency-bearing token with digits, otherwise a security/maintenance line becomes
// the description (last one wins). Pass 2 only runs when pass 1 found no amount and
// takes the number after the highest-priority marker on the first line that has one.
func (e *FieldExtractor) Extract(text string) domain.ExtractedFields {
	lines := strings.Split(text, "\n")

	var amount, description string
	source := domain.AmountSourceNone

	for i, line := range lines {
		if totalKeywordPattern.MatchString(line) {
			if found, ok := amountFromTotalLine(line); ok {
				amount = found
				source = domain.AmountSourceTotalLine
				e.debugf("line %d: total amount %q", i, found)
			}
		} else if descriptionKeywordPattern.MatchString(line) {
			description = strings.TrimSpace(line)
			e.debugf("line %d: description %q", i, description)
		}
	}

	if amount == "" {
		for i, line := range lines {
			if found, ok := amountAfterMarker(line); ok {
				amount = found
				source = domain.AmountSourceFallback
				e.debugf("line %d: fallback amount %q", i, found)
				break
			}
		}
	}

	if description == "" {
		description = domain.DefaultDescription
	}

	return domain.ExtractedFields{
		Amount:       amount,
		Description:  description,
		AmountSource: source,
	}
}

// amountFromTotalLine scans whitespace-delimited tokens and returns the numeric part
// of the first token that carries a currency marker and a number.
func amountFromTotalLine(line string) (string, bool) {
	for _, token := range strings.Fields(line) {
		if !hasCurrencyMarker(token) {
			continue
		}
		if match := amountPattern.FindString(token); match != "" {
			return match, true
		}
	}
	return "", false
}

// amountAfterMarker takes the segment between the first and second occurrence of the
// highest-priority marker present and returns the first number in it.
func amountAfterMarker(line string) (string, bool) {
	for _, marker := range currencyMarkers {
		loc := marker.pattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		rest := line[loc[1]:]
		if next := marker.pattern.FindStringIndex(rest); next != nil {
			rest = rest[:next[0]]
		}
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return "", false
		}
		match := amountPattern.FindString(rest)
		return match, match != ""
	}
	return "", false
}

func hasCurrencyMarker(s string) bool {
	for _, marker := range currencyMarkers {
		if marker.pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func (e *FieldExtractor) debugf(format string, args ...interface{}) {
	if e.enableDebugLogging {
		log.Printf("[EXTRACT] "+format, args...)
	}
}
