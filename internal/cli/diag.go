package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "diag",
		Short: "Dump every intermediate value of the date and urgency resolution",
		Run:   runDiag,
	}

	RootCmd.AddCommand(cmd)
}

func runDiag(cmd *cobra.Command, args []string) {
	_, s, svc := session(cmd)
	defer s.Close()

	printJSONIndent(svc.Diagnostics(cmd.Context()))
}
