package main

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/gwamegi-riders/internal/credential"
)

func newKeyringCmd(deps cliDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyring",
		Short: "Store the API key in the OS keyring for CREDENTIALSOURCE=keyring",
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Save the API key read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ring, err := deps.openKeyring()
			if err != nil {
				return fmt.Errorf("open keyring: %w", err)
			}
			if err := ring.Set(keyring.Item{
				Key:         credential.KeyringKey,
				Data:        []byte(secret),
				Label:       "Gwamegi Riders API key",
				Description: "API key for the AI rider guide",
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved to keyring")
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ring, err := deps.openKeyring()
			if err != nil {
				return fmt.Errorf("open keyring: %w", err)
			}
			if err := ring.Remove(credential.KeyringKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keyring")
			return nil
		},
	}

	cmd.AddCommand(set, del)
	return cmd
}
