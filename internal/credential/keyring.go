package credential

import (
	"context"
	"errors"
	"strings"

	"github.com/99designs/keyring"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
)

type keyringProvider struct {
	ring keyring.Keyring
	key  string
}

func NewKeyringProvider(ring keyring.Keyring, key string) *keyringProvider {
	return &keyringProvider{ring: ring, key: key}
}

// OpenKeyring opens the OS credential store used for local development.
func OpenKeyring() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName:              KeyringService,
		KeychainTrustApplication: true,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
		},
	})
}

func (p *keyringProvider) Credential(_ context.Context) (string, error) {
	item, err := p.ring.Get(p.key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errs.NewCredentialError("keyring", err)
	}
	return strings.TrimSpace(string(item.Data)), nil
}
