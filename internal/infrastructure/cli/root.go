// Package cli wires the cobra command surface.
package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eufat/snapshell/internal/app"
	"github.com/eufat/snapshell/internal/domain"
	"github.com/eufat/snapshell/internal/services"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	clip := NewClipboard()
	container.Session.Clipboard = clip
	container.Doctor.Clipboard = clip

	var (
		interactive   bool
		multiline     bool
		reasoning     string
		model         string
		system        string
		systemSingle  string
		systemMulti   string
		showReasoning bool
		noCopy        bool
		noCache       bool
		timeout       time.Duration
	)

	root := &cobra.Command{
		Use:   "snapshell [prompt...]",
		Short: "Snappy shell command generation",
		Long: "snapshell turns a natural-language request into a shell command by querying " +
			"a remote model, then prints it, copies it to the clipboard and logs it to history.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			effort := reasoning
			if effort == "" {
				effort = container.Config.Reasoning
			}
			level, err := domain.ParseReasoningLevel(effort)
			if err != nil {
				return err
			}

			mode := domain.ModeSingleLine
			if multiline {
				mode = domain.ModeMultiline
			}

			cfg := container.Config
			modelName := cfg.Model
			if model != "" {
				modelName = model
			}

			runCtx := cmd.Context()
			if timeout > 0 && !interactive {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, timeout)
				defer cancel()
			}

			session := container.Session
			if !interactive {
				session.Provider = withSpinner(session.Provider)
			}

			_, err = session.Run(services.SessionRequest{
				Context:         runCtx,
				Prompt:          strings.Join(args, " "),
				Mode:            mode,
				Reasoning:       level,
				ShowReasoning:   showReasoning,
				Interactive:     interactive,
				Model:           modelName,
				SystemOverride:  cfg.ResolveSystemOverride(mode, system, systemSingle, systemMulti),
				CopyToClipboard: cfg.CopyToClipboard && !noCopy && !interactive,
				UseCache:        cfg.Cache.Enabled && !noCache && !interactive,
			})
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVarP(&interactive, "ask", "a", false, "Interactive chat mode (prints conversation)")
	root.Flags().BoolVarP(&multiline, "multiline", "L", false, "Allow multi-line shell script output instead of forcing a single-line command")
	root.Flags().StringVarP(&reasoning, "reasoning", "r", "", "Reasoning effort: low, medium or high (default: low)")
	root.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	root.Flags().StringVarP(&system, "system", "s", "", "Custom system instruction (overrides defaults for both modes)")
	root.Flags().StringVar(&systemSingle, "system-single", "", "Custom system instruction for single-line mode")
	root.Flags().StringVar(&systemMulti, "system-multiline", "", "Custom system instruction for multiline mode")
	root.Flags().BoolVarP(&showReasoning, "show-reasoning", "S", false, `Include model reasoning as a trailing JSON object {"reasoning": "..."}`)
	root.Flags().BoolVar(&noCopy, "no-copy", false, "Do not copy the generated command to the clipboard")
	root.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the response cache")
	root.Flags().DurationVar(&timeout, "timeout", 0, "Override request timeout (one-shot mode)")

	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newDoctorCommand(container))
	return root, nil
}
