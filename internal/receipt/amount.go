package receipt

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	keywordPattern = regexp.MustCompile(`(?i)total|amount due|amount|grand total|balance due`)
	moneyPattern   = regexp.MustCompile(`[₹$£€]?\s*([0-9]{1,3}(?:,[0-9]{3})*\.[0-9]{2}|[0-9]+(?:\.[0-9]{2})?)`)
)

// ExtractAmount scans OCR text for the transaction amount. Lines containing
// a total keyword are checked first, in order, and the first positive money
// value found wins. When no keyword line yields a value, the largest money
// value anywhere in the text is used. Returns 0 when no value is found.
func ExtractAmount(text string) float64 {
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if !keywordPattern.MatchString(line) {
			continue
		}
		if v := firstAmount(line); v > 0 {
			return v
		}
	}

	var largest float64
	for _, line := range lines {
		for _, m := range moneyPattern.FindAllStringSubmatch(line, -1) {
			if v := parseAmount(m[1]); v > largest {
				largest = v
			}
		}
	}
	return largest
}

func firstAmount(line string) float64 {
	for _, m := range moneyPattern.FindAllStringSubmatch(line, -1) {
		if v := parseAmount(m[1]); v > 0 {
			return v
		}
	}
	return 0
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
