// Package cli wires the flexrun commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flexrun",
	Short: "Usability test runner for Flex App prototypes",
	Long: `flexrun runs remote-defined usability tests against design prototypes.

Testers run a session from a shared link; creators list their tests and
review the collected responses.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
