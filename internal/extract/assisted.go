package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"spendledger/internal/core"
	applog "spendledger/internal/log"
	"spendledger/internal/normalize"
)

var (
	embeddedAmountRE = regexp.MustCompile(`\$?(-?\d{1,3}(?:,\d{3})*(?:\.\d+)?)`)
	isoInStringRE    = regexp.MustCompile(`20\d{2}-\d{2}-\d{2}`)
)

// AssistedExtractor hands each document's raw text to a generative model and
// schema-checks the returned transaction array. Amounts still go through the
// normalizer with the raw text as debit context, so the sign convention
// matches the heuristic engine's.
type AssistedExtractor struct {
	client *genai.Client
	model  string
	logger *applog.Logger
}

// NewAssistedExtractor creates the model-backed extractor. Credentials come
// from the environment.
func NewAssistedExtractor(ctx context.Context, model string, logger *applog.Logger) (*AssistedExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &AssistedExtractor{
		client: client,
		model:  model,
		logger: logger.WithComponent(applog.ComponentExtract),
	}, nil
}

var _ TransactionExtractor = (*AssistedExtractor)(nil)

// Extract queries the model once per document. A failed call degrades to
// zero records for that document; the error is reported so the orchestrator
// can log it, but extraction of the remaining documents continues.
func (e *AssistedExtractor) Extract(ctx context.Context, docs []core.SourceDocument) (core.Ledger, error) {
	var ledger core.Ledger
	var lastErr error
	for _, doc := range docs {
		text := doc.Text
		if len(doc.Pages) > 0 {
			text = strings.Join(doc.Pages, "\n\n")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		recs, err := e.extractOne(ctx, doc.Name, text)
		if err != nil {
			e.logger.WarnContext(ctx, "Assisted extraction failed for document",
				applog.FieldFile, doc.Name, applog.FieldError, err)
			lastErr = err
			continue
		}
		ledger = append(ledger, recs...)
	}
	return ledger, lastErr
}

func (e *AssistedExtractor) extractOne(ctx context.Context, file, rawText string) ([]core.TransactionRecord, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildExtractionPrompt(rawText)}},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	rawOut := resp.Text()
	if rawOut == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var items []map[string]interface{}
	if err := json.Unmarshal([]byte(cleanModelArray(rawOut)), &items); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}

	recs := make([]core.TransactionRecord, 0, len(items))
	for _, obj := range items {
		rec := transformModelTxn(obj, rawText)
		rec.File = file
		if err := core.ValidateRecord(rec); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// transformModelTxn converts one model-output object into a candidate
// record, normalizing each field and falling back to an amount embedded in
// the description when the model omitted one.
func transformModelTxn(obj map[string]interface{}, rawText string) core.TransactionRecord {
	rec := core.TransactionRecord{Source: core.SourceLLM}

	if s := stringField(obj, "desc"); s == "" {
		rec.Desc = stringField(obj, "description")
	} else {
		rec.Desc = s
	}

	if s := stringField(obj, "date"); s != "" {
		if iso, ok := normalize.Date(s); ok {
			rec.Date = &iso
		} else if m := isoInStringRE.FindString(s); m != "" {
			rec.Date = &m
		}
	}

	if s := stringField(obj, "vendor"); s != "" {
		rec.Vendor = &s
	}

	currency := stringField(obj, "currency")
	if currency == "" {
		currency = "USD"
	}
	rec.Currency = &currency

	if tok := amountToken(obj); tok != "" {
		if v, ok := normalize.Amount(tok, rawText); ok {
			rec.Amount = &v
		}
	}
	if rec.Amount == nil {
		hunt := rec.Desc
		if hunt == "" {
			hunt = rawText
		}
		if m := embeddedAmountRE.FindStringSubmatch(hunt); m != nil {
			if v, ok := normalize.Amount(m[1], rawText); ok {
				rec.Amount = &v
			}
		}
	}

	return rec
}

func stringField(obj map[string]interface{}, key string) string {
	if v, ok := obj[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// amountToken renders whatever the model put in "amount" back into a token
// the normalizer can handle: numbers pass through, strings keep their
// symbols and parentheses.
func amountToken(obj map[string]interface{}) string {
	v, ok := obj["amount"]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case float64:
		return fmt.Sprintf("%v", val)
	case string:
		return val
	default:
		return ""
	}
}

func buildExtractionPrompt(rawText string) string {
	return "You are a financial transaction extractor for noisy OCR text from bank statements, " +
		"SMS payment alerts and receipts.\n\n" +
		"Task:\n" +
		"- Extract ALL transactions from the text below.\n" +
		"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
		"- Output a JSON array of objects.\n\n" +
		"Each object must have these fields:\n" +
		"- \"date\": string in ISO format \"YYYY-MM-DD\", or null\n" +
		"- \"vendor\": string or null\n" +
		"- \"amount\": number (negative for money OUT) or string as written\n" +
		"- \"currency\": string (e.g. \"USD\"), or null\n" +
		"- \"desc\": string, the source line the transaction came from\n\n" +
		"Return ONLY valid raw JSON.\n" +
		"Do NOT wrap the response in code fences.\n" +
		"Output must begin with \"[\" and end with \"]\".\n\n" +
		"Text:\n" + rawText
}

// cleanModelArray strips markdown fences and keeps the outermost JSON array
// when the model ignores the formatting instructions.
func cleanModelArray(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = strings.TrimSpace(s[idx+1:])
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
