package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"spendledger/internal/core"
)

// GeminiFallback classifies leftover vendors with a generative model. One
// batched call per run; the response must be a strict JSON array of
// {vendor, category} objects and anything else is treated as an empty
// result by the caller.
type GeminiFallback struct {
	client     *genai.Client
	model      string
	categories []string
}

// NewGeminiFallback creates the model-backed fallback classifier. The genai
// client picks credentials up from the environment.
func NewGeminiFallback(ctx context.Context, model string, rules core.CategoryMap) (*GeminiFallback, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiFallback{
		client:     client,
		model:      model,
		categories: rules.Categories(),
	}, nil
}

var _ Fallback = (*GeminiFallback)(nil)

// Classify sends the vendor batch to the model and parses the mapping out of
// its reply. Vendors the model skips or mislabels are simply absent from the
// result.
func (g *GeminiFallback) Classify(ctx context.Context, vendors []string) (map[string]string, error) {
	if len(vendors) == 0 {
		return map[string]string{}, nil
	}

	vendorJSON, err := json.Marshal(vendors)
	if err != nil {
		return nil, fmt.Errorf("marshal vendors: %w", err)
	}

	prompt := g.buildPrompt(string(vendorJSON))

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var parsed []struct {
		Vendor   string `json:"vendor"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}

	valid := make(map[string]bool, len(g.categories))
	for _, c := range g.categories {
		valid[c] = true
	}

	out := make(map[string]string, len(parsed))
	for _, p := range parsed {
		if p.Vendor == "" || p.Category == "" {
			continue
		}
		if !valid[strings.ToLower(p.Category)] {
			continue
		}
		out[p.Vendor] = strings.ToLower(p.Category)
	}
	return out, nil
}

func (g *GeminiFallback) buildPrompt(vendorJSON string) string {
	return "You are a spending categorizer for personal-finance transactions.\n\n" +
		"Task:\n" +
		"- For each vendor in the attached JSON array, pick the single best category.\n" +
		"- Allowed categories: " + strings.Join(g.categories, ", ") + ".\n" +
		"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
		"- Output a JSON array of objects with fields \"vendor\" and \"category\".\n\n" +
		"Return ONLY valid raw JSON.\n" +
		"Do NOT wrap the response in code fences.\n" +
		"Output must begin with \"[\" and end with \"]\".\n\n" +
		"Vendors:\n" + vendorJSON
}

// cleanModelJSON strips markdown fences and surrounding junk the model may
// wrap its JSON array in despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
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
