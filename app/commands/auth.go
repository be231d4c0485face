package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) registerCommand() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.Register(name, email, password)
			if err != nil {
				return friendly(err)
			}
			printSuccess(cmd.OutOrStdout(), "Welcome, %s!", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 6 characters)")
	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.Login(email, password)
			if err != nil {
				return friendly(err)
			}
			printSuccess(cmd.OutOrStdout(), "Logged in as %s", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.auth.Logout() {
				return fmt.Errorf("failed to clear the session")
			}
			printSuccess(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			user := a.auth.CurrentUser()
			if user == nil {
				warning.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			subtle.Fprintf(cmd.OutOrStdout(), "member since %s\n", user.CreatedAt.Format("Jan 2, 2006"))
		},
	}
}
