package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/dataset"
	"github.com/kozaktomas/face-attendance/internal/identity"
	"github.com/kozaktomas/face-attendance/internal/users"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage registered users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	RunE:  runUsersList,
}

var usersAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersAdd,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)

	usersAddCmd.Flags().String("enrollment", "", "Enrollment number")
	usersAddCmd.Flags().String("branch", "", "Branch or department")
	usersAddCmd.Flags().String("year", "", "Year of study")
	usersAddCmd.Flags().String("email", "", "Email address")
}

func runUsersList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	profiles, err := users.New(cfg.Storage.UsersPath).List()
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No users registered yet")
		return nil
	}

	fmt.Printf("%-30s %-12s %-10s %-6s %s\n", "Name", "Enrollment", "Branch", "Year", "Email")
	for _, p := range profiles {
		fmt.Printf("%-30s %-12s %-10s %-6s %s\n",
			identity.Display(p.Name), p.Enrollment, p.Branch, p.Year, p.Email)
	}
	return nil
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	name := identity.Normalize(args[0])
	if name == "" {
		return fmt.Errorf("a non-empty name is required")
	}

	cfg := config.Load()

	profile := users.Profile{
		Name:       name,
		Enrollment: mustGetString(cmd, "enrollment"),
		Branch:     mustGetString(cmd, "branch"),
		Year:       mustGetString(cmd, "year"),
		Email:      mustGetString(cmd, "email"),
	}

	if err := users.New(cfg.Storage.UsersPath).Add(profile); err != nil {
		return fmt.Errorf("registering user: %w", err)
	}

	if _, err := dataset.NewStore(cfg.Storage.DatasetDir).EnsurePartition(name); err != nil {
		return fmt.Errorf("preparing dataset folder: %w", err)
	}

	fmt.Printf("Registered %s\n", identity.Display(name))
	return nil
}
