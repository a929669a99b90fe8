package services

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eufat/snapshell/internal/domain"
	"github.com/eufat/snapshell/internal/ports"
)

// ExitToken terminates an interactive session when entered alone.
const ExitToken = "/exit"

// SessionService drives one conversation with the model provider, from the
// initial prompt through presentation and history persistence. One request
// is in flight at a time; the service blocks on the provider call and, in
// interactive mode, on the next line of user input.
type SessionService struct {
	Provider  ports.Provider
	History   ports.HistoryRepository
	Cache     ports.CacheRepository
	Clipboard ports.Clipboard
	Logger    ports.Logger

	Input     io.Reader
	Output    io.Writer
	ErrOutput io.Writer
}

// SessionRequest captures user intent for one invocation.
type SessionRequest struct {
	Context         context.Context
	Prompt          string
	Mode            domain.Mode
	Reasoning       domain.ReasoningLevel
	ShowReasoning   bool
	Interactive     bool
	Model           string
	SystemOverride  string
	CopyToClipboard bool
	UseCache        bool
}

// SessionResult reports the outcome of the final presented turn.
type SessionResult struct {
	Command      string
	Reasoning    string
	HasReasoning bool
	FromCache    bool
	Turns        int
}

// Run processes a session end-to-end and returns the last presented result.
func (s *SessionService) Run(req SessionRequest) (SessionResult, error) {
	if s.Provider == nil || s.History == nil || s.Logger == nil {
		return SessionResult{}, errors.New("services.SessionService dependencies not satisfied")
	}
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	system := BuildSystemPrompt(req.Mode, req.Reasoning, req.ShowReasoning, req.SystemOverride)
	transcript := domain.NewTranscript(system, req.Prompt)

	sessionID := uuid.NewString()
	s.Logger.Debug("session started", map[string]interface{}{
		"session":     sessionID,
		"mode":        req.Mode.String(),
		"model":       req.Model,
		"interactive": req.Interactive,
	})

	if req.Interactive {
		return s.runInteractive(ctx, req, transcript, sessionID)
	}
	return s.runOnce(ctx, req, transcript, system, sessionID)
}

func (s *SessionService) runOnce(ctx context.Context, req SessionRequest, transcript *domain.Transcript, system, sessionID string) (SessionResult, error) {
	var (
		raw       string
		fromCache bool
		key       string
	)

	if req.UseCache && s.Cache != nil {
		key = cacheKey(req.Model, req.Mode, system, req.Prompt)
		if entry, ok, err := s.Cache.Get(key); err == nil && ok {
			raw = entry.Completion
			fromCache = true
			s.Logger.Debug("cache hit", map[string]interface{}{"session": sessionID, "key": key})
		}
	}

	if !fromCache {
		completion, err := s.complete(ctx, req, transcript)
		if err != nil {
			return SessionResult{}, err
		}
		raw = completion
	}

	if err := transcript.AppendAssistant(raw); err != nil {
		return SessionResult{}, err
	}

	parsed := ParseResponse(raw, req.Mode)
	s.present(req, parsed)

	result := SessionResult{
		Command:      parsed.Command,
		Reasoning:    parsed.Reasoning,
		HasReasoning: parsed.HasReasoning,
		FromCache:    fromCache,
		Turns:        1,
	}

	// A sentinel answer is content, not a command: it is presented and
	// logged like any other turn but never copied or cached.
	sentinel := IsNotAbleAnswer(parsed.Command)
	if req.CopyToClipboard && !sentinel {
		s.copyToClipboard(parsed.Command)
	}
	s.persist(req.Prompt, parsed.Command)
	if key != "" && !fromCache && !sentinel {
		entry := domain.CacheEntry{Key: key, Model: req.Model, Completion: raw, CreatedAt: time.Now().UTC()}
		if err := s.Cache.Set(entry); err != nil {
			s.Logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return result, nil
}

func (s *SessionService) runInteractive(ctx context.Context, req SessionRequest, transcript *domain.Transcript, sessionID string) (SessionResult, error) {
	out := s.output()
	fmt.Fprintf(out, "Entering interactive chat mode. Type '%s' or empty line to quit.\n", ExitToken)

	reader := bufio.NewReader(s.input())
	var result SessionResult

	for {
		raw, err := s.complete(ctx, req, transcript)
		switch {
		case err != nil && domain.KindOf(err) == domain.KindParse:
			// The turn is lost but the session survives: drop the
			// unanswered user message so a follow-up starts clean.
			fmt.Fprintf(s.errOutput(), "response unreadable: %v\n", err)
			transcript.DropPendingUser()
		case err != nil:
			return result, err
		default:
			if err := transcript.AppendAssistant(raw); err != nil {
				return result, err
			}
			parsed := ParseResponse(raw, req.Mode)
			prompt := transcript.LastUserPrompt()
			s.present(req, parsed)
			if req.CopyToClipboard && !IsNotAbleAnswer(parsed.Command) {
				s.copyToClipboard(parsed.Command)
			}
			s.persist(prompt, parsed.Command)
			result = SessionResult{
				Command:      parsed.Command,
				Reasoning:    parsed.Reasoning,
				HasReasoning: parsed.HasReasoning,
				Turns:        result.Turns + 1,
			}
		}

		fmt.Fprint(out, "> ")
		line, readErr := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" || line == ExitToken {
			s.Logger.Debug("session terminated", map[string]interface{}{"session": sessionID, "turns": result.Turns})
			return result, nil
		}
		if err := transcript.AppendUser(line); err != nil {
			return result, err
		}
		if readErr != nil {
			// Input stream is gone; finish after this last buffered line.
			s.Logger.Debug("input closed", map[string]interface{}{"session": sessionID})
		}
	}
}

func (s *SessionService) complete(ctx context.Context, req SessionRequest, transcript *domain.Transcript) (string, error) {
	return s.Provider.Complete(ctx, ports.CompletionRequest{
		Model:            req.Model,
		Messages:         transcript.Messages(),
		Effort:           req.Reasoning,
		IncludeReasoning: req.ShowReasoning,
	})
}

func (s *SessionService) present(req SessionRequest, parsed domain.ParsedResponse) {
	out := s.output()
	fmt.Fprintln(out, parsed.Command)
	if parsed.ModeMismatch {
		s.Logger.Warn("model produced multiple lines in single-line mode", map[string]interface{}{
			"lines": strings.Count(parsed.Command, "\n") + 1,
		})
	}
	if req.ShowReasoning && parsed.HasReasoning {
		if line, err := json.Marshal(map[string]string{"reasoning": parsed.Reasoning}); err == nil {
			fmt.Fprintln(out, string(line))
		}
	}
}

// persist appends the turn to history. A write failure is reported as a
// warning: the command has already been presented, so the user keeps the
// result either way.
func (s *SessionService) persist(prompt, command string) {
	record := domain.HistoryRecord{Timestamp: time.Now().UTC(), Prompt: prompt, Command: command}
	if err := s.History.Append(record); err != nil {
		s.Logger.Warn("history append failed", map[string]interface{}{"error": err.Error()})
		fmt.Fprintf(s.errOutput(), "warning: could not save history: %v\n", err)
	}
}

func (s *SessionService) copyToClipboard(command string) {
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		return
	}
	if err := s.Clipboard.Copy(command); err != nil {
		s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *SessionService) input() io.Reader {
	if s.Input != nil {
		return s.Input
	}
	return os.Stdin
}

func (s *SessionService) output() io.Writer {
	if s.Output != nil {
		return s.Output
	}
	return os.Stdout
}

func (s *SessionService) errOutput() io.Writer {
	if s.ErrOutput != nil {
		return s.ErrOutput
	}
	return os.Stderr
}

// cacheKey derives a stable digest for one-shot request deduplication.
func cacheKey(model string, mode domain.Mode, system, prompt string) string {
	h := sha256.New()
	for _, part := range []string{model, mode.String(), system, prompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
