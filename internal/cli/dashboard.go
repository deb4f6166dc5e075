package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	reviewtui "github.com/emiliopalmerini/flexrun/internal/review/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse your tests and their responses",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	d, cleanup, err := wire(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	program := tea.NewProgram(reviewtui.NewApp(d.client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
