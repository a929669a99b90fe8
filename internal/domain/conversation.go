// Package domain defines core entities and value objects for snapshell.
//
// The domain layer is independent of infrastructure concerns and holds the
// conversation, history and configuration types shared across the
// application.
package domain

import "fmt"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation transcript. Messages are immutable
// once appended to a Transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript holds the ordered conversation history for one session.
//
// Invariants enforced by the type:
//   - exactly one leading system message, never duplicated or removed
//   - user and assistant messages strictly alternate, starting with user
type Transcript struct {
	messages []Message
}

// NewTranscript seeds a transcript with the system instruction and the
// initial user prompt.
func NewTranscript(system, prompt string) *Transcript {
	return &Transcript{
		messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: prompt},
		},
	}
}

// AppendUser adds a follow-up user message. The previous message must be an
// assistant reply, or the system message when the pending user turn of a
// failed exchange has been dropped.
func (t *Transcript) AppendUser(content string) error {
	if last := t.last(); last.Role == RoleUser {
		return fmt.Errorf("transcript: user message must follow an assistant reply, last role is %q", last.Role)
	}
	t.messages = append(t.messages, Message{Role: RoleUser, Content: content})
	return nil
}

// AppendAssistant adds a model reply. The previous message must be a user
// message.
func (t *Transcript) AppendAssistant(content string) error {
	if last := t.last(); last.Role != RoleUser {
		return fmt.Errorf("transcript: assistant message must follow a user message, last role is %q", last.Role)
	}
	t.messages = append(t.messages, Message{Role: RoleAssistant, Content: content})
	return nil
}

// DropPendingUser removes a trailing user message that never received a
// reply. Used when a turn fails after the user message was recorded, so the
// next follow-up starts from a consistent transcript.
func (t *Transcript) DropPendingUser() bool {
	if last := t.last(); last.Role != RoleUser || len(t.messages) <= 1 {
		return false
	}
	t.messages = t.messages[:len(t.messages)-1]
	return true
}

// Messages returns a copy of the transcript in insertion order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len reports the number of messages including the system message.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// LastUserPrompt returns the content of the most recent user message.
func (t *Transcript) LastUserPrompt() string {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleUser {
			return t.messages[i].Content
		}
	}
	return ""
}

func (t *Transcript) last() Message {
	return t.messages[len(t.messages)-1]
}
