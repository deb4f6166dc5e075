package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var responsesCmd = &cobra.Command{
	Use:   "responses <test-id>",
	Short: "Show the responses collected for a test",
	Args:  cobra.ExactArgs(1),
	RunE:  runResponses,
}

func init() {
	rootCmd.AddCommand(responsesCmd)
}

func runResponses(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	d, cleanup, err := wire(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	title, grouped, err := d.client.FetchResponses(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetching responses: %w", err)
	}

	if title != "" {
		fmt.Println(title)
		fmt.Println()
	}
	if len(grouped) == 0 {
		fmt.Println("No responses yet.")
		return nil
	}

	for i, group := range grouped {
		fmt.Printf("%d. %s\n", i+1, group.Question)
		for _, ans := range group.Answers {
			marker := "-"
			if ans.IsAudio {
				marker = "~" // transcribed from audio
			}
			if ans.Timestamp != "" {
				fmt.Printf("  %s %s (%s)\n", marker, ans.Answer, ans.Timestamp)
			} else {
				fmt.Printf("  %s %s\n", marker, ans.Answer)
			}
		}
		fmt.Println()
	}
	return nil
}
