package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/flexrun/internal/review"
)

var testsCmd = &cobra.Command{
	Use:   "tests",
	Short: "Manage your tests",
}

var testsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tests, newest first",
	RunE:  runTestsList,
}

var testsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new test and print its share link",
	RunE:  runTestsCreate,
}

var createDraft struct {
	title       string
	description string
	link        string
	device      string
	questions   []string
}

func init() {
	rootCmd.AddCommand(testsCmd)
	testsCmd.AddCommand(testsListCmd)
	testsCmd.AddCommand(testsCreateCmd)

	testsCreateCmd.Flags().StringVar(&createDraft.title, "title", "", "test title")
	testsCreateCmd.Flags().StringVar(&createDraft.description, "description", "", "welcome text shown to testers")
	testsCreateCmd.Flags().StringVar(&createDraft.link, "link", "", "Figma prototype link")
	testsCreateCmd.Flags().StringVar(&createDraft.device, "device", "Web", "device type: Web or App")
	testsCreateCmd.Flags().StringArrayVar(&createDraft.questions, "question", nil, "feedback question (repeatable)")
	_ = testsCreateCmd.MarkFlagRequired("title")
	_ = testsCreateCmd.MarkFlagRequired("link")
}

func runTestsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	d, cleanup, err := wire(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	tests, err := d.client.ListTests(ctx)
	if err != nil {
		return fmt.Errorf("listing tests: %w", err)
	}
	if len(tests) == 0 {
		fmt.Println("No tests yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREATED\tLINK")
	for _, t := range tests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.DateDisplay(), t.Link)
	}
	return w.Flush()
}

func runTestsCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	d, cleanup, err := wire(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	created, err := d.client.CreateTest(ctx, review.TestDraft{
		Title:         createDraft.title,
		Description:   createDraft.description,
		PrototypeLink: createDraft.link,
		DeviceType:    createDraft.device,
		Questions:     createDraft.questions,
	})
	if err != nil {
		return fmt.Errorf("creating test: %w", err)
	}

	fmt.Printf("Test creado: %s\n", created.ID)
	if created.Link != "" {
		fmt.Printf("Compartí este link: %s\n", created.Link)
	}
	return nil
}
