package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eufat/snapshell/internal/app"
	"github.com/eufat/snapshell/internal/domain"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, history and clipboard health",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.Doctor.Run(cmd.Context())
			out := cmd.OutOrStdout()
			for _, check := range report.Checks {
				fmt.Fprintf(out, "[%s] %s: %s\n", statusLabel(check.Status), check.Name, check.Details)
			}
			return err
		},
	}
}

func statusLabel(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return "ok"
	case domain.HealthWarn:
		return "warn"
	default:
		return "fail"
	}
}
