// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/civicportal/internal/platform/constants"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/users/auth"
)

// PasswordEnv lets scripts supply the password without exposing it in argv.
const PasswordEnv = "PORTALCTL_PASSWORD"

type superuserOptions struct {
	username   string
	email      string
	fullName   string
	password   string
	bcryptCost int
}

// NewCreateSuperuserCmd creates the createsuperuser command.
func NewCreateSuperuserCmd(opts *globalOptions) *cobra.Command {
	input := &superuserOptions{}

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active staff account with superuser rights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input.password == "" {
				input.password = os.Getenv(PasswordEnv)
			}
			if err := input.validate(); err != nil {
				return err
			}
			if err := opts.requireDatabase(); err != nil {
				return err
			}

			logger := opts.logger(cmd)
			pool, err := postgres.NewPool(cmd.Context(), opts.databaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			store := auth.NewCredentialStore(auth.NewUserRepository(pool), sec.NewBcryptHasher(input.bcryptCost))
			user, err := store.CreateSuperuser(cmd.Context(), auth.NewUser{
				Username: input.username,
				Email:    input.email,
				FullName: input.fullName,
				Password: input.password,
			})
			if err != nil {
				return fmt.Errorf("create_superuser_failed: %w", err)
			}

			cmd.Printf("superuser %q created with id %d\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.username, "username", "", "login name (required)")
	cmd.Flags().StringVar(&input.email, "email", "", "contact address (required)")
	cmd.Flags().StringVar(&input.fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&input.password, "password", "", "password, or set "+PasswordEnv)
	cmd.Flags().IntVar(&input.bcryptCost, "bcrypt-cost", 12, "bcrypt work factor")

	return cmd
}

func (input *superuserOptions) validate() error {
	switch {
	case input.username == "":
		return fmt.Errorf("invalid_input: --username is required")
	case input.email == "":
		return fmt.Errorf("invalid_input: --email is required")
	case len(input.password) < constants.MinPasswordLength:
		return fmt.Errorf("invalid_input: password must be at least %d characters", constants.MinPasswordLength)
	}
	return nil
}
