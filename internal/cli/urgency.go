package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/dayplan/internal/temporal"
)

func init() {
	cmd := &cobra.Command{
		Use:   "urgency",
		Short: "Print reflection urgency and presentation mode",
		Run:   runUrgency,
	}
	cmd.Flags().Bool("fast", false, "Skip storage and return a provisional level")

	RootCmd.AddCommand(cmd)
}

func runUrgency(cmd *cobra.Command, args []string) {
	fast, _ := cmd.Flags().GetBool("fast")

	_, s, svc := session(cmd)
	defer s.Close()

	if fast {
		est := svc.UrgencyFast()
		printJSON(map[string]interface{}{
			"urgency":      est.Value,
			"presentation": temporal.PresentationFor(est.Value),
			"status":       est.Status,
		})
		return
	}

	level := svc.Urgency(cmd.Context())
	printJSON(map[string]interface{}{
		"urgency":      level,
		"presentation": temporal.PresentationFor(level),
		"status":       temporal.Resolved,
	})
}
