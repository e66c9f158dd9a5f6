// Command ridersctl prepares the AI credential for the different
// CREDENTIALSOURCE settings of the api server.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	kmsapi "cloud.google.com/go/kms/apiv1"
	"github.com/99designs/keyring"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/gwamegi-riders/internal/credential"
	"github.com/GregMSThompson/gwamegi-riders/internal/crypto"
)

type sealer interface {
	KmsEncrypt(ctx context.Context, plaintext string) (string, error)
}

type cliDeps struct {
	openKeyring func() (keyring.Keyring, error)
	newSealer   func(ctx context.Context, keyName string) (sealer, func() error, error)
}

func defaultDeps() cliDeps {
	return cliDeps{
		openKeyring: credential.OpenKeyring,
		newSealer: func(ctx context.Context, keyName string) (sealer, func() error, error) {
			client, err := kmsapi.NewKeyManagementClient(ctx)
			if err != nil {
				return nil, nil, err
			}
			return crypto.NewKMS(client, keyName), client.Close, nil
		},
	}
}

func newRootCmd(deps cliDeps) *cobra.Command {
	root := &cobra.Command{
		Use:           "ridersctl",
		Short:         "Manage the Gwamegi Riders AI credential",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSealCmd(deps), newKeyringCmd(deps))
	return root
}

func main() {
	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readSecret reads a single line so the key never lands in shell history.
func readSecret(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	secret := strings.TrimSpace(line)
	if secret == "" {
		return "", errors.New("no API key on stdin")
	}
	return secret, nil
}
