package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revxlabs/revx/pkg/revx"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and store credentials",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := session.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email> <username> <full-name> <password>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := session.Register(cmd.Context(), revx.RegisterInput{
			Email:    args[0],
			Username: args[1],
			FullName: args[2],
			Password: args[3],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Welcome, %s\n", user.FullName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and drop stored credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Logout(cmd.Context()); err != nil {
			// Local credentials are gone regardless.
			fmt.Println("Signed out locally; server did not acknowledge:", err)
			return nil
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !session.Authenticated() {
			fmt.Println("Not signed in")
			return nil
		}
		user, err := session.RefreshUser(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		if user.IsAdmin {
			fmt.Println("Role: admin")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
