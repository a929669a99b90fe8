package services

import (
	"encoding/json"
	"strings"

	"github.com/eufat/snapshell/internal/domain"
)

// ParseResponse splits a raw completion into the command (or free-form
// answer) and an optional trailing reasoning annotation.
//
// The last line is treated as a reasoning trailer only when it is a
// single-line compact JSON object carrying a string-valued "reasoning" key.
// Anything less well-formed stays in the command text: parsing never fails,
// it only degrades to "no reasoning found".
func ParseResponse(raw string, mode domain.Mode) domain.ParsedResponse {
	trimmed := strings.TrimSpace(raw)

	body := ""
	last := trimmed
	if idx := strings.LastIndexByte(trimmed, '\n'); idx >= 0 {
		body = strings.TrimRight(trimmed[:idx], " \t\r\n")
		last = strings.TrimSpace(trimmed[idx+1:])
	}

	resp := domain.ParsedResponse{Command: trimmed}
	if reasoning, ok := decodeReasoningLine(last); ok {
		resp.Command = body
		resp.Reasoning = reasoning
		resp.HasReasoning = true
	}

	if mode == domain.ModeSingleLine && strings.Contains(resp.Command, "\n") {
		resp.ModeMismatch = true
	}
	return resp
}

// decodeReasoningLine accepts one compact JSON object whose "reasoning" key
// holds a string. Extra keys are tolerated; a missing key, a non-string
// value or any decode failure rejects the line.
func decodeReasoningLine(line string) (string, bool) {
	if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
		return "", false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		return "", false
	}
	value, ok := obj["reasoning"]
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	if !ok {
		return "", false
	}
	return text, true
}
