// Package services holds the conversation pipeline: prompt construction,
// completion parsing and the interactive session loop.
package services

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/eufat/snapshell/internal/domain"
)

// NotAbleSentinel prefixes model answers for requests that no shell command
// can satisfy. Sentinel responses are printed and logged to history like any
// other answer but never copied to the clipboard or cached.
const NotAbleSentinel = "(NOT ABLE TO ANSWER):"

const defaultSingleInstruction = "You are a strict shell command generator. " +
	"OUTPUT ONLY shell commands or shell syntax in plain text with no explanations, no commentary, and no additional prose. " +
	"DO NOT output any markdown, code fences, backticks, or formatting of any kind. " +
	"The entire response MUST be a single-line shell command with no extra text. " +
	"Never add numbering, bullets, examples, or any text before or after the command. " +
	"If you do NOT know the correct command, respond exactly with the following format and nothing else: " +
	"(NOT ABLE TO ANSWER): <one-sentence reason>. " +
	"Always respond only with the shell command(s) or the one-line failure phrase in the format above."

const defaultMultilineInstruction = "You are a strict shell command generator. " +
	"OUTPUT ONLY shell commands or shell syntax in plain text with no explanations, no commentary, and no additional prose. " +
	"DO NOT output any markdown, code fences, backticks, or formatting of any kind. " +
	"Multi-line shell scripts are allowed when necessary. " +
	"Never add numbering, bullets, examples, or any text before or after the command. " +
	"If you do NOT know the correct command, respond exactly with the following format and nothing else: " +
	"(NOT ABLE TO ANSWER): <one-sentence reason>. " +
	"Always respond only with the shell command(s) or the one-line failure phrase in the format above."

const (
	overrideSuffixSingle    = " Respond with only a single-line shell command."
	overrideSuffixMultiline = " Respond with only a shell script."
	reasoningClause         = ` After the command, output exactly one additional line containing a JSON object {"reasoning": "<one sentence>"} and nothing else.`
)

// BuildSystemPrompt assembles the system instruction for a mode. A non-empty
// override is used verbatim plus a fixed output-contract suffix; otherwise
// the built-in instruction for the mode applies. The reasoning level only
// travels with the provider request and never changes the prompt text.
func BuildSystemPrompt(mode domain.Mode, _ domain.ReasoningLevel, showReasoning bool, override string) string {
	var sb strings.Builder
	if override != "" {
		sb.WriteString(override)
		if mode == domain.ModeMultiline {
			sb.WriteString(overrideSuffixMultiline)
		} else {
			sb.WriteString(overrideSuffixSingle)
		}
	} else if mode == domain.ModeMultiline {
		sb.WriteString(defaultMultilineInstruction)
	} else {
		sb.WriteString(defaultSingleInstruction)
	}
	if showReasoning {
		sb.WriteString(reasoningClause)
	}
	fmt.Fprintf(&sb, " Target environment: %s. Ensure generated commands are compatible with this environment.", DetectEnvironment())
	return sb.String()
}

// IsNotAbleAnswer reports whether a completion carries the "no shell command
// applies" sentinel. The check is a case-insensitive prefix match; the
// sentinel is content, not a parser-level special case.
func IsNotAbleAnswer(text string) bool {
	trimmed := strings.TrimSpace(text)
	return len(trimmed) >= len(NotAbleSentinel) &&
		strings.EqualFold(trimmed[:len(NotAbleSentinel)], NotAbleSentinel)
}

// osReleasePath is a variable so tests can point at a fixture.
var osReleasePath = "/etc/os-release"

// DetectEnvironment names the user's OS (and Linux distro family) so the
// model can tailor generated commands.
func DetectEnvironment() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "windows":
		return "windows"
	case "linux":
		data, err := os.ReadFile(osReleasePath)
		if err != nil {
			return "linux"
		}
		content := strings.ToLower(string(data))
		switch {
		case strings.Contains(content, "debian"), strings.Contains(content, "ubuntu"):
			return "linux (debian/ubuntu)"
		case strings.Contains(content, "fedora"):
			return "linux (fedora)"
		case strings.Contains(content, "arch"):
			return "linux (arch)"
		default:
			return "linux"
		}
	default:
		return "unknown"
	}
}
