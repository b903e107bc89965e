package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numericRE    = regexp.MustCompile(`-?\d+(\.\d+)?`)
	nonNumericRE = regexp.MustCompile(`[^\d.\-]`)
	debitRE      = regexp.MustCompile(`(?i)\b(debited|paid|withdrawn|purchase|spent)\b`)
	currCodeRE   = regexp.MustCompile(`(?i)usd|inr|gbp|eur`)
)

// CleanNumber scrubs a money token down to digits, dot and sign and parses
// the remainder. It is the bare scrub used on tokens the amount regexes have
// already isolated; sign handling from context belongs to Amount.
func CleanNumber(token string) (float64, bool) {
	t := nonNumericRE.ReplaceAllString(strings.TrimSpace(token), "")
	if t == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Amount parses a monetary token using the surrounding text for sign context.
// Parenthesized values are negative; a debit indicator in the context forces
// the magnitude negative unless the token is already signed. On a parse
// failure the first numeric substring is taken instead. Not-ok only when the
// token holds no numeric content at all.
func Amount(token, context string) (float64, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		s = "-" + strings.NewReplacer("(", "", ")", "").Replace(s)
	}

	s = strings.NewReplacer("$", "", "₹", "", "£", "", "€", "", ",", "").Replace(s)
	s = currCodeRE.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if debitRE.MatchString(context) && !strings.HasPrefix(s, "-") {
		if m := numericRE.FindString(s); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return -math.Abs(v), true
			}
		}
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}

	if m := numericRE.FindString(s); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v, true
		}
	}

	return 0, false
}
