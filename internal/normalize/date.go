// Package normalize canonicalizes the date, amount and currency tokens that
// OCR-derived financial text produces. Every function degrades to a not-ok
// result instead of returning an error: unrecognized input is expected here,
// not exceptional.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDateRE      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayMonYearRE   = regexp.MustCompile(`^(\d{2})-([A-Za-z]{3})-(\d{4})$`)
	numericDateRE  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	freeTextDateRE = regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})`)
)

var monthNums = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

func monthNum(mon string) int {
	if len(mon) > 3 {
		mon = mon[:3]
	}
	return monthNums[strings.ToLower(mon)]
}

// Date canonicalizes a date token to YYYY-MM-DD. Recognized forms, tried in
// order: ISO passthrough, DD-Mon-YYYY, D/M/Y or D-M-Y (2-digit years read as
// 20YY), and free-text "Mon D, YYYY". Anything else is not-ok.
func Date(token string) (string, bool) {
	tok := strings.TrimSpace(token)
	if tok == "" {
		return "", false
	}

	if isoDateRE.MatchString(tok) {
		return tok, true
	}

	if m := dayMonYearRE.FindStringSubmatch(tok); m != nil {
		if mon := monthNum(m[2]); mon != 0 {
			d, _ := strconv.Atoi(m[1])
			y, _ := strconv.Atoi(m[3])
			return fmt.Sprintf("%04d-%02d-%02d", y, mon, d), true
		}
	}

	if m := numericDateRE.FindStringSubmatch(tok); m != nil {
		ys := m[3]
		if len(ys) == 2 {
			ys = "20" + ys
		}
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(ys)
		return fmt.Sprintf("%04d-%02d-%02d", y, mo, d), true
	}

	if m := freeTextDateRE.FindStringSubmatch(tok); m != nil {
		mon := monthNum(m[1])
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%04d-%02d-%02d", y, mon, d), true
	}

	return "", false
}
