package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the effective today",
		Long: "Print the date that planning and reflection currently refer to. During night mode " +
			"this is yesterday while yesterday has goals and no reflection. With --fast no storage " +
			"is read and the result is provisional.",
		Run: runToday,
	}
	cmd.Flags().Bool("fast", false, "Skip storage and return a provisional date")

	RootCmd.AddCommand(cmd)
}

func runToday(cmd *cobra.Command, args []string) {
	fast, _ := cmd.Flags().GetBool("fast")

	_, s, svc := session(cmd)
	defer s.Close()

	if fast {
		printJSON(svc.EffectiveTodayFast())
		return
	}
	printJSON(svc.EffectiveToday(cmd.Context()))
}
