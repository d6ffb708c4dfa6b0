package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "revrec",
		Short:         "Revenue recognition for platform billing data",
		Long:          "revrec extracts paid invoices from the payment platform and expands them into day-granular recognised and deferred revenue schedules, converted to a reporting currency at historical rates.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newExtractCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
