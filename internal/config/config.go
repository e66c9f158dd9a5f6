package config

import (
	"os"
	"strings"
	"time"
)

type AIProvider string

const (
	AIProviderVertex AIProvider = "vertex"
	AIProviderOpenAI AIProvider = "openai"
)

type CredentialSource string

const (
	CredentialEnv     CredentialSource = "env"
	CredentialSecret  CredentialSource = "secret"
	CredentialKMS     CredentialSource = "kms"
	CredentialKeyring CredentialSource = "keyring"
)

type ContentSource string

const (
	ContentBuiltin   ContentSource = "builtin"
	ContentFile      ContentSource = "file"
	ContentFirestore ContentSource = "firestore"
)

type Config struct {
	ProjectID        string
	Region           string
	LogLevel         string
	Port             string
	AIProvider       AIProvider
	VertexModel      string
	OpenAIModel      string
	OpenAIBaseURL    string
	CredentialSource CredentialSource
	APIKeyEnv        string
	APIKeySecret     string
	KMSKeyName       string
	SealedAPIKeyEnv  string
	ContentSource    ContentSource
	ContentFile      string
	SessionTTL       time.Duration
}

func New() *Config {
	return &Config{
		ProjectID:        os.Getenv("PROJECTID"),
		Region:           getEnv("REGION", "asia-northeast3"),
		LogLevel:         os.Getenv("LOGLEVEL"),
		Port:             getEnv("PORT", "8080"),
		AIProvider:       getAIProvider(os.Getenv("AIPROVIDER")),
		VertexModel:      getEnv("VERTEXMODEL", "gemini-3-flash-preview"),
		OpenAIModel:      getEnv("OPENAIMODEL", "gpt-4o-mini"),
		OpenAIBaseURL:    os.Getenv("OPENAIBASEURL"),
		CredentialSource: getCredentialSource(os.Getenv("CREDENTIALSOURCE")),
		APIKeyEnv:        getEnv("APIKEYENV", "GEMINIAPIKEY"),
		APIKeySecret:     getEnv("APIKEYSECRET", "gemini-api-key"),
		KMSKeyName:       os.Getenv("KMSKEYNAME"),
		SealedAPIKeyEnv:  getEnv("SEALEDAPIKEYENV", "SEALEDAPIKEY"),
		ContentSource:    getContentSource(os.Getenv("CONTENTSOURCE")),
		ContentFile:      getEnv("CONTENTFILE", "content.yaml"),
		SessionTTL:       getDuration("SESSIONTTL", 30*time.Minute),
	}
}

// Model is the single model the configured provider talks to.
func (c *Config) Model() string {
	if c.AIProvider == AIProviderOpenAI {
		return c.OpenAIModel
	}
	return c.VertexModel
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getAIProvider(provider string) AIProvider {
	switch strings.ToLower(provider) {
	case "openai":
		return AIProviderOpenAI
	default: // "vertex"
		return AIProviderVertex
	}
}

func getCredentialSource(source string) CredentialSource {
	switch strings.ToLower(source) {
	case "secret":
		return CredentialSecret
	case "kms":
		return CredentialKMS
	case "keyring":
		return CredentialKeyring
	default: // "env"
		return CredentialEnv
	}
}

func getContentSource(source string) ContentSource {
	switch strings.ToLower(source) {
	case "file":
		return ContentFile
	case "firestore":
		return ContentFirestore
	default: // "builtin"
		return ContentBuiltin
	}
}
