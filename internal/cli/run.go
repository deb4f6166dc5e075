package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/flexrun/internal/app/tui"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

var runCmd = &cobra.Command{
	Use:   "run <link-or-id>",
	Short: "Run a testing session",
	Long: `Run a usability testing session from a shared link or a bare test ID.

Examples:
  flexrun run "https://example.github.io/tester/?id=rec123"
  flexrun run rec123`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	id, err := domain.TestIDFromLink(args[0])
	if err != nil {
		return fmt.Errorf("no test ID in %q: %w", args[0], err)
	}

	d, cleanup, err := wire(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	session := domain.NewSession(id)
	program := tea.NewProgram(tui.NewApp(d.service, session, d.logger))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}
