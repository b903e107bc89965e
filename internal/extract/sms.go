package extract

import (
	"regexp"
	"strings"

	"spendledger/internal/core"
	"spendledger/internal/normalize"
)

const maxSMSDescLen = 2000

var (
	smsTimestampRE = regexp.MustCompile(`(?s)^\[(\d{4}-\d{2}-\d{2})[^\]]*\]\s*(.*)$`)
	smsMarkerRE    = regexp.MustCompile(`\[\d{4}-\d{2}-\d{2}`)
	txnKeywordRE   = regexp.MustCompile(`(?i)\b(debit|paid|payment|charge|credited|withdrawn|transfer|spent|purchase|order total|total|fare|bill|deducted)\b`)

	vendorPhraseREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bto\s+([A-Za-z0-9_'\-.\s&]+)`),
		regexp.MustCompile(`(?i)\bat\s+([A-Za-z0-9_'\-.\s&]+)`),
		regexp.MustCompile(`(?i)\bfor\s+([A-Za-z0-9_'\-.\s&]+)`),
		regexp.MustCompile(`(?i)\bvia\s+([A-Za-z0-9_'\-.\s&]+)`),
	}
	vendorFromRE = regexp.MustCompile(`(?i)from[:\s]+([A-Za-z0-9_'\-.\s&]+)`)
)

// SplitMessages segments a block of text into individual messages on
// bracketed [YYYY-MM-DD ...] timestamp markers. Returns nil when the text
// carries no markers.
func SplitMessages(text string) []string {
	starts := smsMarkerRE.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		if msg := strings.TrimSpace(text[loc[0]:end]); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// ParseSMSMessage converts one payment-alert message into a candidate
// record. Messages without a transaction keyword (OTPs, promos) are
// rejected. Amount tokens sitting next to a balance mention are skipped in
// favor of the next candidate; when every candidate is balance-context the
// first one is taken anyway.
func ParseSMSMessage(msg string) (core.TransactionRecord, bool) {
	text := strings.TrimSpace(msg)
	if text == "" {
		return core.TransactionRecord{}, false
	}

	var datePtr *string
	body := text
	if m := smsTimestampRE.FindStringSubmatch(text); m != nil {
		if iso, ok := normalize.Date(m[1]); ok {
			datePtr = &iso
		}
		body = strings.TrimSpace(m[2])
	}

	if !txnKeywordRE.MatchString(body) {
		return core.TransactionRecord{}, false
	}

	candidates := amountRE.FindAllStringIndex(body, -1)
	var amount *float64
	var currency string
	for _, span := range candidates {
		start, end := span[0], span[1]
		ctxStart := max(0, start-10)
		ctxEnd := min(len(body), end+10)
		if strings.Contains(strings.ToLower(body[ctxStart:ctxEnd]), "bal") {
			continue
		}
		if v, ok := normalize.CleanNumber(body[start:end]); ok {
			amount = &v
			currency, _ = normalize.Currency(body[start:end])
		}
		break
	}
	if amount == nil && len(candidates) > 0 {
		tok := body[candidates[0][0]:candidates[0][1]]
		if v, ok := normalize.CleanNumber(tok); ok {
			amount = &v
			currency, _ = normalize.Currency(tok)
		}
	}
	if amount == nil {
		return core.TransactionRecord{}, false
	}

	var vendorPtr *string
	for _, re := range vendorPhraseREs {
		if m := re.FindStringSubmatch(body); m != nil {
			if v := strings.Trim(m[1], " .,-"); v != "" {
				vendorPtr = &v
			}
			break
		}
	}
	if vendorPtr == nil {
		if m := vendorFromRE.FindStringSubmatch(text); m != nil {
			if v := strings.Trim(m[1], " .,-"); v != "" {
				vendorPtr = &v
			}
		}
	}

	desc := body
	if len(desc) >= maxSMSDescLen {
		desc = desc[:maxSMSDescLen] + "..."
	}

	if currency == "" {
		currency = "USD"
	}

	return core.TransactionRecord{
		Date:     datePtr,
		Vendor:   vendorPtr,
		Amount:   amount,
		Currency: &currency,
		Desc:     desc,
		Source:   core.SourceSMS,
	}, true
}
