package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

// ParsedExpense is the structured triple extracted from free text. An
// empty Category means the model did not produce a usable label.
type ParsedExpense struct {
	Amount   float64
	Note     string
	Category string
}

// ParseError is the single failure type the parser surfaces. Message is
// safe to show to the user; the raw model output never leaks through it.
type ParseError struct {
	Reason     string
	Err        error
	Unexpected bool
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse expense: %s: %v", e.Reason, e.Err)
	}
	return "parse expense: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Message is the user-facing text for this failure.
func (e *ParseError) Message() string {
	if e.Unexpected {
		return "An unexpected error occurred. Please try again."
	}
	return "Failed to parse expense details. Please try again with a different format."
}

// TextGenerator is the narrow contract the parser needs from a text
// generation service: one prompt in, one text reply out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Parser extracts (amount, note, category) from free-form expense text.
type Parser struct {
	gen TextGenerator
}

func New(gen TextGenerator) *Parser {
	return &Parser{gen: gen}
}

const promptTemplate = `Parse the following expense text into amount, note and category.
The amount should be a number (can be in thousands with 'k' or millions with 'm'); expand such shorthand into a plain numeric value.
The note should be a description of the expense.
The category should be one of these: %s
Return ONLY a JSON object with 'amount', 'note' and 'category' fields, nothing else.

Text: %s

Example output:
{
    "amount": 50000,
    "note": "lunch with friends",
    "category": "🍔 Food & Dining"
}`

// Parse issues one generation request and enforces the JSON contract on
// the reply. The model's shorthand expansion of the amount is trusted as
// is; no plausibility check is applied on top of the numeric coercion.
func (p *Parser) Parse(ctx context.Context, text string) (ParsedExpense, error) {
	prompt := fmt.Sprintf(promptTemplate, strings.Join(model.Categories, ", "), text)

	raw, err := p.gen.GenerateText(ctx, prompt)
	if err != nil {
		return ParsedExpense{}, &ParseError{Reason: "text generation failed", Err: err, Unexpected: true}
	}

	clean := stripFences(raw)
	dec := json.NewDecoder(bytes.NewReader([]byte(clean)))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return ParsedExpense{}, &ParseError{Reason: "malformed JSON in response", Err: err}
	}

	rawAmount, ok := payload["amount"]
	if !ok {
		return ParsedExpense{}, &ParseError{Reason: "response missing 'amount'"}
	}
	rawNote, ok := payload["note"]
	if !ok {
		return ParsedExpense{}, &ParseError{Reason: "response missing 'note'"}
	}

	amount, err := toFloat(rawAmount)
	if err != nil {
		return ParsedExpense{}, &ParseError{Reason: "amount is not a number", Err: err, Unexpected: true}
	}

	parsed := ParsedExpense{Amount: amount, Note: fmt.Sprint(rawNote)}
	if cat, ok := payload["category"].(string); ok {
		parsed.Category = cat
	}
	// A label outside the enumeration counts as no category at all, which
	// sends the add through the category keyboard.
	if !model.IsCategory(parsed.Category) {
		parsed.Category = ""
	}
	return parsed, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("unsupported amount type %T", v)
	}
}

// stripFences removes an optional Markdown code fence (```json ... ```)
// around the model's reply.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}
