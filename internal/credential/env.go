package credential

import (
	"context"
	"os"
	"strings"
)

type envProvider struct {
	key    string
	lookup func(string) string
}

func NewEnvProvider(key string) *envProvider {
	return &envProvider{key: key, lookup: os.Getenv}
}

func (p *envProvider) Credential(_ context.Context) (string, error) {
	return strings.TrimSpace(p.lookup(p.key)), nil
}
