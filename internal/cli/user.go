package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/notes-be/internal/forms"
	"github.com/isdelr/notes-be/internal/services"
	"github.com/spf13/cobra"
)

func (c *CLI) newCreateUserCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "createuser <username>",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := c.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			userService := services.NewUserService(db, services.NewEventService(db))

			form := forms.SignupForm{Username: strings.TrimSpace(args[0]), Password1: password, Password2: password}
			valid, err := form.Validate(userService)
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("invalid user: %v", form.Errors)
			}

			user, err := userService.CreateUser(form.Username, form.Password1)
			if err != nil {
				if errors.Is(err, services.ErrUsernameTaken) {
					return fmt.Errorf("user %q already exists", form.Username)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password for the new account")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
