package extraction

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/resume-ranker/internal/utils"
)

const previewLength = 120

// Payload is the coerced content of a gateway answer.
type Payload struct {
	Skills          []string
	ExperienceYears float64
	// Ignored lists top-level keys that were present but not consumed.
	Ignored []string
}

type rawPayload struct {
	Skills          any `mapstructure:"skills"`
	ExperienceYears any `mapstructure:"experience_years"`
}

// Parse locates the JSON object inside a model answer and coerces its fields.
//
// A non-list "skills" becomes an empty list and non-string entries are skipped.
// A missing, non-numeric, negative or non-finite "experience_years" becomes 0.
// Experience is rounded to one decimal place.
func Parse(raw string) (*Payload, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return nil, &MalformedError{Reason: "empty answer"}
	}

	span, ok := FirstObject(cleaned)
	if !ok {
		return nil, &MalformedError{
			Reason:  "answer does not contain a JSON object",
			Preview: utils.TruncateForLog(cleaned, previewLength),
		}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(span), &data); err != nil {
		return nil, &MalformedError{
			Reason:  "decode JSON object",
			Preview: utils.TruncateForLog(span, previewLength),
			Cause:   err,
		}
	}

	var decoded rawPayload
	var meta mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &decoded,
		Metadata: &meta,
	})
	if err != nil {
		return nil, fmt.Errorf("create payload decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, &MalformedError{Reason: "decode payload fields", Cause: err}
	}

	return &Payload{
		Skills:          coerceStrings(decoded.Skills),
		ExperienceYears: Round1(coerceYears(decoded.ExperienceYears)),
		Ignored:         meta.Unused,
	}, nil
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func coerceYears(v any) float64 {
	f := coerceFloat(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
