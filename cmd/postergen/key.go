package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/supchaser/postergen/internal/app/credential"
)

func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", len(key)-7) + key[len(key)-4:]
}

func keyCmd(opts *options, ui *ui) *cobra.Command {
	key := &cobra.Command{
		Use:   "key",
		Short: "Manage the generation service API key",
	}

	set := &cobra.Command{
		Use:   "set [key]",
		Short: "Store the API key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				secret string
				err    error
			)
			if len(args) == 1 {
				secret = strings.TrimSpace(args[0])
			} else {
				secret, err = promptSecret("API key")
				if err != nil {
					return err
				}
			}
			if secret == "" {
				return errors.New("api key is empty")
			}

			// Saved directly so that a write failure reaches the user.
			if err := credential.NewFilePersister(opts.credentialsPath).Save(cmd.Context(), secret); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s API key saved to %s\n", ui.ok("[OK]"), opts.credentialsPath)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show whether an API key is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := opts.store().Get(cmd.Context())
			if secret == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s No API key configured (run `postergen key set`)\n", ui.warn("[WARN]"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s API key: %s %s\n", ui.ok("[OK]"), maskKey(secret), ui.dim(opts.credentialsPath))
			return nil
		},
	}

	key.AddCommand(set, show)
	return key
}
