package main

import (
	"fmt"

	"paquexpress/internal/pkg/password"

	"github.com/spf13/cobra"
)

// NewHashPasswordCmd creates the hash-password subcommand. The hash uses
// BCRYPT_COST, the same cost the API verifies against.
func NewHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <plaintext>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			hasher, err := password.NewBcryptHasher(cfg.BcryptCost)
			if err != nil {
				return err
			}

			hash, err := hasher.Hash(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
