package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
)

type createUserOptions struct {
	email    string
	name     string
	password string
	role     string
}

// NewCreateUserCommand creates the create-user command
func NewCreateUserCommand(opts *RootOptions) *cobra.Command {
	o := &createUserOptions{}

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register a staff or admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, _, err := openDatabase(opts.Config)
			if err != nil {
				return err
			}
			defer pool.Close()

			auth := services.NewAuthService(pool.GetDB(), opts.Config, nil, nil)
			user, err := auth.CreateUser(cmd.Context(), o.email, o.name, o.password, o.role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&o.email, "email", "", "login email")
	cmd.Flags().StringVar(&o.name, "name", "", "display name")
	cmd.Flags().StringVar(&o.password, "password", "", "password")
	cmd.Flags().StringVar(&o.role, "role", "staff", "admin or staff")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
