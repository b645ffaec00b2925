package outfit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrExtraction reports that model output could not be turned into a plan.
var ErrExtraction = errors.New("model response is not a JSON object")

const fence = "```"

// ExtractPlan parses raw model text into a candidate plan. Only the single
// leading code fence convention is unwrapped; anything that is not a strict JSON
// object yields ErrExtraction. Field shapes are left to Normalize.
func ExtractPlan(raw string) (DayPlan, error) {
	text := stripFence(raw)

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrExtraction)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrExtraction, describe(value))
	}
	return DayPlan(obj), nil
}

// stripFence removes a leading ``` fence and an optional json language tag.
func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, fence) {
		return text
	}
	text = strings.Split(text, fence)[1]
	if strings.HasPrefix(text, "json") {
		text = strings.TrimSpace(text[len("json"):])
	}
	return text
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", value)
	}
}
