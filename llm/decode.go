package llm

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
)

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

// ParseError reports model output that could not be decoded into the target.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("llm: parse structured output %q: %v", truncate(e.Input, 80), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodeJSON decodes model output into v. The output may be bare JSON, JSON
// inside a markdown code fence, or JSON embedded in surrounding prose.
// Unknown fields are rejected. Every failure is a *ParseError.
func DecodeJSON(text string, v any) error {
	text = strings.TrimSpace(strings.TrimPrefix(text, "\ufeff"))
	if text == "" {
		return &ParseError{Input: text, Err: errors.New("empty output")}
	}

	var lastErr error
	for _, candidate := range candidates(text) {
		if err := decodeStrict(candidate, v); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no JSON value found")
	}
	return &ParseError{Input: text, Err: lastErr}
}

// candidates lists the substrings worth decoding, most literal first.
func candidates(text string) []string {
	out := []string{text}
	if m := fenceRe.FindStringSubmatch(text); len(m) > 1 && m[1] != "" {
		out = append(out, m[1])
	}
	if s := extractBalanced(text); s != "" && s != text {
		out = append(out, s)
	}
	return out
}

func decodeStrict(s string, v any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Anything after the first value means the candidate was not pure JSON.
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return errors.New("trailing data after JSON value")
	}
	return nil
}

// extractBalanced returns the first balanced {...} or [...] in text.
func extractBalanced(text string) string {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return ""
	}
	open := text[start]
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	depth := 0
	inString := false
	escape := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		switch {
		case escape:
			escape = false
		case ch == '\\' && inString:
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			depth++
		case ch == closing:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
