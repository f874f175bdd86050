package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// currencyRegex matches dollar-amount-shaped substrings: optional $, optional
// thousands separators, exactly two decimal digits.
var currencyRegex = regexp.MustCompile(`\$?\s*([0-9]{1,3}(?:,[0-9]{3})*\.[0-9]{2}|[0-9]+\.[0-9]{2})(?:[^0-9]|$)`)

// labelWindowSize is how many lines below a matched label (inclusive of the
// label line itself) are searched for an amount.
const labelWindowSize = 3

// parseMoney converts a currency-shaped substring to its numeric value.
func parseMoney(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(s, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// splitLines breaks raw document text into trimmed, non-blank lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// firstAmountIn returns the first currency-shaped amount in a line.
func firstAmountIn(line string) (float64, bool) {
	matches := currencyRegex.FindStringSubmatch(line)
	if len(matches) < 2 {
		return 0, false
	}
	return parseMoney(matches[1])
}

// findAmountNearLabel scans lines top-to-bottom for the label regex. On a hit
// at line i it searches the fixed forward window (i, i+1, i+2) for the first
// currency-shaped amount. The first label occurrence whose window contains an
// amount wins; earlier label hits with empty windows do not block later ones.
func findAmountNearLabel(lines []string, labelRegex *regexp.Regexp) (float64, bool) {
	for i, line := range lines {
		if !labelRegex.MatchString(line) {
			continue
		}
		for j := i; j < i+labelWindowSize && j < len(lines); j++ {
			if amount, ok := firstAmountIn(lines[j]); ok {
				return amount, true
			}
		}
	}
	return 0, false
}

// maxAmountInText scans the whole document for currency-shaped substrings and
// returns the numeric maximum. The largest dollar figure on a bill is very
// often the total due, which makes this a usable blind fallback when no label
// matched anywhere.
func maxAmountInText(text string) (float64, bool) {
	matches := currencyRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}

	var max float64
	found := false
	for _, m := range matches {
		amount, ok := parseMoney(m[1])
		if !ok {
			continue
		}
		if !found || amount > max {
			max = amount
			found = true
		}
	}
	return max, found
}

// extractAmount resolves a monetary concept described by a set of label
// phrases. Label proximity is always preferred; the global-maximum fallback
// only applies where magnitude itself is evidence (the total due).
func extractAmount(text string, labelRegex *regexp.Regexp, fallbackToMax bool) *float64 {
	if amount, ok := findAmountNearLabel(splitLines(text), labelRegex); ok {
		return &amount
	}
	if fallbackToMax {
		if amount, ok := maxAmountInText(text); ok {
			return &amount
		}
	}
	return nil
}
