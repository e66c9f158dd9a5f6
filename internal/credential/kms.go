package credential

import (
	"context"
	"os"
	"strings"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
)

type decrypter interface {
	KmsDecrypt(ctx context.Context, ciphertext string) (string, error)
}

// kmsProvider reads a base64 KMS ciphertext from the environment and decrypts
// it on every call, so the plaintext key never sits in the process environment.
type kmsProvider struct {
	kms    decrypter
	key    string
	lookup func(string) string
}

func NewKMSProvider(kms decrypter, envKey string) *kmsProvider {
	return &kmsProvider{kms: kms, key: envKey, lookup: os.Getenv}
}

func (p *kmsProvider) Credential(ctx context.Context) (string, error) {
	sealed := strings.TrimSpace(p.lookup(p.key))
	if sealed == "" {
		return "", nil
	}
	plain, err := p.kms.KmsDecrypt(ctx, sealed)
	if err != nil {
		return "", errs.NewCredentialError("kms", err)
	}
	return strings.TrimSpace(plain), nil
}
