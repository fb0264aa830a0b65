package feedback

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/crucial707/feedback-board/cmd/cli/output"
	"github.com/crucial707/feedback-board/cmd/cli/root"
	"github.com/crucial707/feedback-board/internal/models"
	"github.com/crucial707/feedback-board/internal/repo"
)

var listUser string

// ==========================
// CLI Command Init
// ==========================
func init() {
	feedbackCmd := &cobra.Command{
		Use:   "feedback",
		Short: "Inspect feedback records",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List feedback, optionally filtered by owner",
		RunE:  runList,
	}
	listCmd.Flags().StringVar(&listUser, "user", "", "only show feedback owned by this username")

	feedbackCmd.AddCommand(listCmd)
	root.GetRoot().AddCommand(feedbackCmd)
}

// ==========================
// List Feedback
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	db, err := root.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	feedbackRepo := repo.NewFeedbackRepo(db)

	var items []models.Feedback
	if listUser != "" {
		items, err = feedbackRepo.ListByUsername(context.Background(), listUser)
	} else {
		items, err = feedbackRepo.List(context.Background())
	}
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(items))
	for _, fb := range items {
		rows = append(rows, []interface{}{fb.ID, fb.Title, fb.Username, fb.CreatedAt.Format("2006-01-02")})
	}

	output.RenderTable([]string{"ID", "Title", "Owner", "Created"}, rows)
	return nil
}
