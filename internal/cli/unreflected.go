package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "unreflected",
		Short: "List recent days with goals but no reflection",
		Run:   runUnreflected,
	}
	cmd.Flags().IntP("window", "w", 0, "Days to look back (default: temporal.window_days)")

	RootCmd.AddCommand(cmd)
}

func runUnreflected(cmd *cobra.Command, args []string) {
	window, _ := cmd.Flags().GetInt("window")

	cfg, s, svc := session(cmd)
	defer s.Close()

	if window <= 0 {
		window = cfg.Temporal.WindowDays
	}
	printJSON(map[string]interface{}{
		"window": window,
		"days":   svc.UnreflectedDays(cmd.Context(), window),
	})
}
