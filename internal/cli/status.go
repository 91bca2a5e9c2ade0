package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the status message for the effective today",
		Long: "Print the status message. Goal counts come from the effective today's plan " +
			"unless --total and --completed are given.",
		Run: runStatus,
	}
	cmd.Flags().Int("total", -1, "Override total goal count")
	cmd.Flags().Int("completed", -1, "Override completed goal count")
	cmd.Flags().Bool("text", false, "Print only the message text")

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	total, _ := cmd.Flags().GetInt("total")
	completed, _ := cmd.Flags().GetInt("completed")
	textOnly, _ := cmd.Flags().GetBool("text")

	if total >= 0 && completed >= 0 && completed > total {
		exitErr("status", fmt.Errorf("completed (%d) exceeds total (%d)", completed, total))
	}

	_, s, svc := session(cmd)
	defer s.Close()

	msg := svc.PlanStatusMessage(cmd.Context(), total, completed)
	if textOnly {
		fmt.Println(msg.Text)
		return
	}
	printJSON(msg)
}
