package services

import (
	"testing"

	"github.com/eufat/snapshell/internal/domain"
)

func TestParseResponseExtractsTrailingReasoning(t *testing.T) {
	raw := "tar -czf backup.tar.gz ~/projects\n{\"reasoning\": \"archives directory with gzip compression\"}"

	resp := ParseResponse(raw, domain.ModeSingleLine)

	if resp.Command != "tar -czf backup.tar.gz ~/projects" {
		t.Fatalf("Command = %q", resp.Command)
	}
	if !resp.HasReasoning {
		t.Fatal("expected reasoning to be extracted")
	}
	if resp.Reasoning != "archives directory with gzip compression" {
		t.Fatalf("Reasoning = %q", resp.Reasoning)
	}
}

func TestParseResponseWithoutReasoningKeepsTextIntact(t *testing.T) {
	raw := "ls -lt | awk '$6 != \"\"'\n"

	resp := ParseResponse(raw, domain.ModeSingleLine)

	if resp.Command != "ls -lt | awk '$6 != \"\"'" {
		t.Fatalf("Command = %q", resp.Command)
	}
	if resp.HasReasoning {
		t.Fatalf("unexpected reasoning %q", resp.Reasoning)
	}
}

func TestParseResponseMalformedTrailersStayInText(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing closing brace", "ls -la\n{\"reasoning\": \"truncated\""},
		{"wrong key", "ls -la\n{\"rationale\": \"nope\"}"},
		{"non-string value", "ls -la\n{\"reasoning\": 42}"},
		{"not json at all", "ls -la\n{reasoning}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := ParseResponse(tc.raw, domain.ModeMultiline)
			if resp.HasReasoning {
				t.Fatalf("extracted reasoning from malformed trailer: %q", resp.Reasoning)
			}
			if resp.Command == "ls -la" {
				t.Fatal("malformed trailer was stripped from the command text")
			}
		})
	}
}

func TestParseResponseSentinelIsPlainContent(t *testing.T) {
	raw := "(NOT ABLE TO ANSWER): TensorRT requires NVIDIA GPUs and cannot be installed here."

	resp := ParseResponse(raw, domain.ModeSingleLine)

	if resp.Command != raw {
		t.Fatalf("Command = %q", resp.Command)
	}
	if !IsNotAbleAnswer(resp.Command) {
		t.Fatal("sentinel not recognized")
	}
}

func TestParseResponseOnlyReasoningLine(t *testing.T) {
	resp := ParseResponse(`{"reasoning": "nothing to run"}`, domain.ModeSingleLine)
	if !resp.HasReasoning || resp.Reasoning != "nothing to run" {
		t.Fatalf("reasoning = %q (has=%v)", resp.Reasoning, resp.HasReasoning)
	}
	if resp.Command != "" {
		t.Fatalf("Command = %q, want empty", resp.Command)
	}
}

func TestParseResponseFlagsMultilineInSingleMode(t *testing.T) {
	raw := "cd /tmp\nls"

	resp := ParseResponse(raw, domain.ModeSingleLine)
	if !resp.ModeMismatch {
		t.Fatal("expected mode mismatch flag")
	}
	if resp.Command != "cd /tmp\nls" {
		t.Fatalf("output was altered: %q", resp.Command)
	}

	if ParseResponse(raw, domain.ModeMultiline).ModeMismatch {
		t.Fatal("multiline mode must not flag multi-line output")
	}
}

func TestParseResponseTrimsSurroundingWhitespace(t *testing.T) {
	resp := ParseResponse("\n  df -h  \n\n", domain.ModeSingleLine)
	if resp.Command != "df -h" {
		t.Fatalf("Command = %q", resp.Command)
	}
}
