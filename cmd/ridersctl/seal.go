package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSealCmd(deps cliDeps) *cobra.Command {
	var keyName string

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt an API key read from stdin with Cloud KMS",
		Long: `seal encrypts the API key read from stdin with the given Cloud KMS key and
prints the base64 ciphertext. Set it as SEALEDAPIKEY with CREDENTIALSOURCE=kms.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyName == "" {
				keyName = os.Getenv("KMSKEYNAME")
			}
			if keyName == "" {
				return fmt.Errorf("--key or KMSKEYNAME is required")
			}

			secret, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}

			s, closeFn, err := deps.newSealer(cmd.Context(), keyName)
			if err != nil {
				return fmt.Errorf("open kms: %w", err)
			}
			defer closeFn()

			sealed, err := s.KmsEncrypt(cmd.Context(), secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sealed)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyName, "key", "", "KMS key resource name (defaults to $KMSKEYNAME)")
	return cmd
}
