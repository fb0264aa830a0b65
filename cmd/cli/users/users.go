package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crucial707/feedback-board/cmd/cli/output"
	"github.com/crucial707/feedback-board/cmd/cli/root"
	"github.com/crucial707/feedback-board/internal/repo"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
		Long:  "List registered users or delete an account (including its feedback).",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE:  runList,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user and all of their feedback",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	usersCmd.AddCommand(listCmd, deleteCmd)
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// List Users
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	db, err := root.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := repo.NewUserRepo(db).List(context.Background())
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{u.Username, u.FullName(), u.Email, u.CreatedAt.Format("2006-01-02")})
	}

	output.RenderTable([]string{"Username", "Name", "Email", "Registered"}, rows)
	return nil
}

// ==========================
// Delete User
// ==========================
func runDelete(cmd *cobra.Command, args []string) error {
	username := args[0]

	db, err := root.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	err = repo.NewUserRepo(db).Delete(context.Background(), username)
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("user %q does not exist", username)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Deleted user %q and their feedback.\n", username)
	return nil
}
