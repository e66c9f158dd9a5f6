package crypto

import (
	"context"
	"encoding/base64"
	"fmt"
	"hash/crc32"

	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type kmsAPI interface {
	Encrypt(ctx context.Context, req *kmspb.EncryptRequest, opts ...gax.CallOption) (*kmspb.EncryptResponse, error)
	Decrypt(ctx context.Context, req *kmspb.DecryptRequest, opts ...gax.CallOption) (*kmspb.DecryptResponse, error)
}

type kms struct {
	client  kmsAPI
	keyName string
}

func NewKMS(client kmsAPI, keyName string) *kms {
	return &kms{client: client, keyName: keyName}
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func checksum(data []byte) *wrapperspb.Int64Value {
	return wrapperspb.Int64(int64(crc32.Checksum(data, castagnoli)))
}

// KmsEncrypt encrypts plaintext using the configured key and returns base64 text.
func (k *kms) KmsEncrypt(ctx context.Context, plaintext string) (string, error) {
	data := []byte(plaintext)
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:            k.keyName,
		Plaintext:       data,
		PlaintextCrc32C: checksum(data),
	})
	if err != nil {
		return "", err
	}
	if !resp.GetVerifiedPlaintextCrc32C() {
		return "", fmt.Errorf("kms encrypt: plaintext corrupted in transit")
	}
	if resp.GetCiphertextCrc32C().GetValue() != checksum(resp.GetCiphertext()).GetValue() {
		return "", fmt.Errorf("kms encrypt: ciphertext corrupted in transit")
	}
	return base64.StdEncoding.EncodeToString(resp.GetCiphertext()), nil
}

// KmsDecrypt decrypts base64 ciphertext using the configured key.
func (k *kms) KmsDecrypt(ctx context.Context, ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("kms decrypt: ciphertext is not base64: %w", err)
	}
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:             k.keyName,
		Ciphertext:       raw,
		CiphertextCrc32C: checksum(raw),
	})
	if err != nil {
		return "", err
	}
	if resp.GetPlaintextCrc32C().GetValue() != checksum(resp.GetPlaintext()).GetValue() {
		return "", fmt.Errorf("kms decrypt: plaintext corrupted in transit")
	}
	return string(resp.GetPlaintext()), nil
}
