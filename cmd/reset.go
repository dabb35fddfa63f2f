package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the profile, chat history, reminder settings and onboarding state",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmReset(cmd.InOrStdin(), cmd.OutOrStdout()) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.Reset(cmd.Context()); err != nil {
			return err
		}
		e.log.Info("data reset")
		fmt.Fprintln(cmd.OutOrStdout(), "All data deleted. Onboarding runs again on next start.")
		return nil
	},
}

// confirmReset asks for a typed "yes" on in.
func confirmReset(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "This deletes all Challengely data. Type 'yes' to continue: ")
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
