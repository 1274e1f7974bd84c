package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"

	QuoteProviderAlphaVantage = "alphavantage"
	QuoteProviderYahoo        = "yahoo"
	QuoteProviderAlpaca       = "alpaca"

	AiProviderOpenAI = "openai"
	AiProviderGemini = "gemini"

	maxQuoteTimeout = 60 * time.Second
)

type Secrets struct {
	Port int    `json:"port"`
	Jwt  string `json:"jwt"`
	// JwksUrl verifies ES256/RS256 tokens. When empty, only HS256 tokens
	// signed with Jwt are accepted.
	JwksUrl string `json:"jwksUrl"`
	Store   struct {
		Backend     string `json:"backend"`
		DatabaseUrl string `json:"databaseUrl"`
	} `json:"store"`
	Stock struct {
		Provider       string `json:"provider"`
		ApiKey         string `json:"apiKey"`
		BaseUrl        string `json:"baseUrl"`
		TimeoutSeconds int    `json:"timeoutSeconds"`
	} `json:"stock"`
	Alpaca struct {
		ApiKey    string `json:"apiKey"`
		ApiSecret string `json:"apiSecret"`
		Endpoint  string `json:"endpoint"`
	} `json:"alpaca"`
	Ai struct {
		Provider  string `json:"provider"`
		OpenAiKey string `json:"openAiKey"`
		GeminiKey string `json:"geminiKey"`
	} `json:"ai"`
	XpFormula string `json:"xpFormula"`
}

// QuoteTimeout is the transport timeout for quote provider calls.
func (s Secrets) QuoteTimeout() time.Duration {
	timeout := time.Duration(s.Stock.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		return 30 * time.Second
	}
	if timeout > maxQuoteTimeout {
		return maxQuoteTimeout
	}
	return timeout
}

// LoadSecrets reads the secrets file, if present, and applies environment
// overrides on top of it.
func LoadSecrets() (*Secrets, error) {
	path := os.Getenv("EDUSTOCKS_SECRETS_PATH")
	if path == "" {
		path = "secrets.json"
	}

	secrets := Secrets{}
	f, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read secrets file %s: %w", path, err)
	}
	if err == nil {
		if err := json.Unmarshal(f, &secrets); err != nil {
			return nil, fmt.Errorf("failed to parse secrets file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&secrets, os.LookupEnv); err != nil {
		return nil, err
	}
	applyDefaults(&secrets)

	return &secrets, nil
}

func applyEnvOverrides(s *Secrets, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			*dst = n
		}
		return nil
	}

	str("JWT_SECRET", &s.Jwt)
	str("JWKS_URL", &s.JwksUrl)
	str("STORE_BACKEND", &s.Store.Backend)
	str("DATABASE_URL", &s.Store.DatabaseUrl)
	str("QUOTE_PROVIDER", &s.Stock.Provider)
	str("STOCK_API_KEY", &s.Stock.ApiKey)
	str("STOCK_API_BASE_URL", &s.Stock.BaseUrl)
	str("ALPACA_API_KEY", &s.Alpaca.ApiKey)
	str("ALPACA_API_SECRET", &s.Alpaca.ApiSecret)
	str("ALPACA_ENDPOINT", &s.Alpaca.Endpoint)
	str("AI_PROVIDER", &s.Ai.Provider)
	str("OPENAI_API_KEY", &s.Ai.OpenAiKey)
	str("GEMINI_API_KEY", &s.Ai.GeminiKey)
	str("XP_FORMULA", &s.XpFormula)

	if err := integer("PORT", &s.Port); err != nil {
		return err
	}
	if err := integer("QUOTE_HTTP_TIMEOUT_SECONDS", &s.Stock.TimeoutSeconds); err != nil {
		return err
	}
	return nil
}

func applyDefaults(s *Secrets) {
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.Store.Backend == "" {
		s.Store.Backend = StoreBackendMemory
		if s.Store.DatabaseUrl != "" {
			s.Store.Backend = StoreBackendPostgres
		}
	}
	if s.Stock.Provider == "" {
		s.Stock.Provider = QuoteProviderAlphaVantage
	}
	if s.Stock.BaseUrl == "" {
		s.Stock.BaseUrl = "https://www.alphavantage.co/query"
	}
	if s.Alpaca.Endpoint == "" {
		s.Alpaca.Endpoint = "https://data.alpaca.markets"
	}
	if s.Ai.Provider == "" {
		s.Ai.Provider = AiProviderOpenAI
	}
	if s.XpFormula == "" {
		s.XpFormula = "score / 10"
	}
}
