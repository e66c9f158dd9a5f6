package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/99designs/keyring"

	"github.com/GregMSThompson/gwamegi-riders/internal/credential"
)

type fakeSealer struct {
	got string
}

func (f *fakeSealer) KmsEncrypt(_ context.Context, plaintext string) (string, error) {
	f.got = plaintext
	return "sealed:" + plaintext, nil
}

func run(t *testing.T, deps cliDeps, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(deps)
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestKeyringSetAndDelete(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)
	deps := cliDeps{openKeyring: func() (keyring.Keyring, error) { return ring, nil }}

	if _, err := run(t, deps, "abc123\n", "keyring", "set"); err != nil {
		t.Fatalf("keyring set: %v", err)
	}
	item, err := ring.Get(credential.KeyringKey)
	if err != nil || string(item.Data) != "abc123" {
		t.Fatalf("stored item = %q, %v", item.Data, err)
	}

	if _, err := run(t, deps, "", "keyring", "delete"); err != nil {
		t.Fatalf("keyring delete: %v", err)
	}
	if _, err := ring.Get(credential.KeyringKey); !errors.Is(err, keyring.ErrKeyNotFound) {
		t.Fatalf("expected key removed, got %v", err)
	}
	if _, err := run(t, deps, "", "keyring", "delete"); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
}

func TestKeyringSetRequiresInput(t *testing.T) {
	deps := cliDeps{openKeyring: func() (keyring.Keyring, error) {
		t.Fatalf("keyring should not be opened without input")
		return nil, nil
	}}

	if _, err := run(t, deps, "  \n", "keyring", "set"); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestSeal(t *testing.T) {
	s := &fakeSealer{}
	var keyName string
	closed := false
	deps := cliDeps{newSealer: func(_ context.Context, name string) (sealer, func() error, error) {
		keyName = name
		return s, func() error { closed = true; return nil }, nil
	}}

	out, err := run(t, deps, "my-key\n", "seal", "--key", "projects/p/locations/global/keyRings/r/cryptoKeys/k")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if strings.TrimSpace(out) != "sealed:my-key" {
		t.Fatalf("output = %q", out)
	}
	if s.got != "my-key" || keyName != "projects/p/locations/global/keyRings/r/cryptoKeys/k" || !closed {
		t.Fatalf("sealer got %q key %q closed %v", s.got, keyName, closed)
	}
}

func TestSealRequiresKey(t *testing.T) {
	t.Setenv("KMSKEYNAME", "")
	deps := cliDeps{newSealer: func(context.Context, string) (sealer, func() error, error) {
		return nil, nil, errors.New("should not be called")
	}}

	if _, err := run(t, deps, "my-key\n", "seal"); err == nil {
		t.Fatalf("expected error without a key name")
	}
}
