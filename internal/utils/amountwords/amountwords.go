// Package amountwords renders a cent amount as the written amount line of a
// check, e.g. 123456 -> "One thousand two hundred thirty-four and 56/100".
package amountwords

import (
	"fmt"
	"strings"
)

var ones = []string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}

var tens = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

var scales = []struct {
	value int64
	name  string
}{
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

// FromCents renders the written-amount line for a positive cent amount.
func FromCents(cents int64) (string, error) {
	if cents < 0 {
		return "", fmt.Errorf("amount must not be negative: %d", cents)
	}
	dollars := cents / 100
	remainder := cents % 100

	var words string
	if dollars == 0 {
		words = "zero"
	} else {
		words = strings.TrimSpace(belowBillionTimesThousand(dollars))
	}

	words = strings.ToUpper(words[:1]) + words[1:]
	return fmt.Sprintf("%s and %02d/100", words, remainder), nil
}

func belowBillionTimesThousand(n int64) string {
	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, belowThousand(n/s.value), s.name)
			n %= s.value
		}
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100], "hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		t := tens[n/10]
		if n%10 != 0 {
			t += "-" + ones[n%10]
		}
		parts = append(parts, t)
	case n > 0:
		parts = append(parts, ones[n])
	}
	return strings.Join(parts, " ")
}
