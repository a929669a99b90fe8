package domain

import "testing"

func TestTranscriptSeedsSystemAndUser(t *testing.T) {
	tr := NewTranscript("be strict", "list files")

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 seeded messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[0].Content != "be strict" {
		t.Fatalf("unexpected system message: %+v", msgs[0])
	}
	if msgs[1].Role != RoleUser || msgs[1].Content != "list files" {
		t.Fatalf("unexpected user message: %+v", msgs[1])
	}
}

func TestTranscriptAlternationAfterCycles(t *testing.T) {
	tr := NewTranscript("sys", "first")

	// Three successful request/follow-up cycles.
	replies := []string{"ls", "ls -la", "ls -lt"}
	for i, reply := range replies {
		if err := tr.AppendAssistant(reply); err != nil {
			t.Fatalf("cycle %d: AppendAssistant() error = %v", i, err)
		}
		if i < len(replies)-1 {
			if err := tr.AppendUser("again"); err != nil {
				t.Fatalf("cycle %d: AppendUser() error = %v", i, err)
			}
		}
	}

	msgs := tr.Messages()
	if want := 1 + 2*len(replies); len(msgs) != want {
		t.Fatalf("expected %d messages after %d cycles, got %d", want, len(replies), len(msgs))
	}
	if msgs[0].Role != RoleSystem {
		t.Fatalf("first message role = %q, want system", msgs[0].Role)
	}
	for i := 1; i < len(msgs); i++ {
		want := RoleUser
		if i%2 == 0 {
			want = RoleAssistant
		}
		if msgs[i].Role != want {
			t.Fatalf("message %d role = %q, want %q", i, msgs[i].Role, want)
		}
	}
}

func TestTranscriptRejectsOutOfOrderAppends(t *testing.T) {
	tr := NewTranscript("sys", "first")

	if err := tr.AppendUser("second user"); err == nil {
		t.Fatal("expected error appending user after user")
	}
	if err := tr.AppendAssistant("reply"); err != nil {
		t.Fatalf("AppendAssistant() error = %v", err)
	}
	if err := tr.AppendAssistant("another reply"); err == nil {
		t.Fatal("expected error appending assistant after assistant")
	}
}

func TestTranscriptDropPendingUser(t *testing.T) {
	tr := NewTranscript("sys", "first")

	if !tr.DropPendingUser() {
		t.Fatal("expected pending user message to be dropped")
	}
	if tr.Len() != 1 {
		t.Fatalf("expected only system message to remain, got %d messages", tr.Len())
	}
	// The system message itself must never be removed.
	if tr.DropPendingUser() {
		t.Fatal("DropPendingUser removed a non-user message")
	}
	// A fresh user message after the drop keeps alternation intact.
	if err := tr.AppendUser("retry"); err != nil {
		t.Fatalf("AppendUser() after drop error = %v", err)
	}
	if err := tr.AppendAssistant("ok"); err != nil {
		t.Fatalf("AppendAssistant() error = %v", err)
	}
}

func TestTranscriptMessagesReturnsCopy(t *testing.T) {
	tr := NewTranscript("sys", "prompt")
	msgs := tr.Messages()
	msgs[0].Content = "mutated"
	if tr.Messages()[0].Content != "sys" {
		t.Fatal("Messages() exposed internal state")
	}
}

func TestTranscriptLastUserPrompt(t *testing.T) {
	tr := NewTranscript("sys", "first")
	if got := tr.LastUserPrompt(); got != "first" {
		t.Fatalf("LastUserPrompt() = %q, want %q", got, "first")
	}
	_ = tr.AppendAssistant("ls")
	_ = tr.AppendUser("follow-up")
	if got := tr.LastUserPrompt(); got != "follow-up" {
		t.Fatalf("LastUserPrompt() = %q, want %q", got, "follow-up")
	}
}
