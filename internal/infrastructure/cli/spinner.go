package cli

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"

	"github.com/eufat/snapshell/internal/ports"
)

// spinnerProvider wraps a provider with a terminal spinner while the
// completion request is in flight. The spinner writes to stderr so piped
// command output stays clean.
type spinnerProvider struct {
	inner ports.Provider
}

func withSpinner(inner ports.Provider) ports.Provider {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return inner
	}
	return &spinnerProvider{inner: inner}
}

func (p *spinnerProvider) Name() string {
	return p.inner.Name()
}

func (p *spinnerProvider) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = " generating..."
	sp.Start()
	defer sp.Stop()
	return p.inner.Complete(ctx, req)
}
