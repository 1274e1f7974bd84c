package jwks

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

type keySet struct {
	Keys []key `json:"keys"`
}

// key holds the JWK fields needed for ES256 and RS256 verification.
type key struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	// EC
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	// RSA
	N string `json:"n"`
	E string `json:"e"`
}

// DefaultKeyTTL bounds how long a fetched key is trusted before the JWKS
// is read again.
const DefaultKeyTTL = time.Hour

type cachedKey struct {
	key       crypto.PublicKey
	fetchedAt time.Time
}

// Client fetches signing keys from JWKS endpoints and caches them by
// url and kid for KeyTTL.
type Client struct {
	HttpClient *http.Client
	KeyTTL     time.Duration
	Now        func() time.Time

	mu    sync.RWMutex
	cache map[string]cachedKey
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		HttpClient: &http.Client{Timeout: timeout},
		KeyTTL:     DefaultKeyTTL,
		Now:        time.Now,
		cache:      map[string]cachedKey{},
	}
}

func base64URLDecodeToBigInt(s string) (*big.Int, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// PublicKey returns *ecdsa.PublicKey or *rsa.PublicKey for kid.
func (c *Client) PublicKey(ctx context.Context, jwksURL, kid string) (crypto.PublicKey, error) {
	cacheKey := jwksURL + "|" + kid
	c.mu.RLock()
	cached, ok := c.cache[cacheKey]
	c.mu.RUnlock()
	if ok && c.Now().Sub(cached.fetchedAt) < c.KeyTTL {
		return cached.key, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build JWKS request: %w", err)
	}
	resp, err := c.HttpClient.Do(req) // #nosec G107 - configured JWKS url
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch JWKS: http %d", resp.StatusCode)
	}

	var set keySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}

	for _, k := range set.Keys {
		if k.Kid != kid {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[cacheKey] = cachedKey{key: pub, fetchedAt: c.Now()}
		c.mu.Unlock()

		return pub, nil
	}

	return nil, fmt.Errorf("kid not found in JWKS: %s", kid)
}

func (k key) publicKey() (crypto.PublicKey, error) {
	switch k.Kty {
	case "EC":
		if k.Crv != "P-256" {
			return nil, fmt.Errorf("unsupported JWK curve: %s", k.Crv)
		}
		x, err := base64URLDecodeToBigInt(k.X)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JWK x: %w", err)
		}
		y, err := base64URLDecodeToBigInt(k.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JWK y: %w", err)
		}
		return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
	case "RSA":
		n, err := base64URLDecodeToBigInt(k.N)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JWK n: %w", err)
		}
		e, err := base64URLDecodeToBigInt(k.E)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JWK e: %w", err)
		}
		if !e.IsInt64() || e.Int64() <= 0 {
			return nil, fmt.Errorf("invalid JWK exponent")
		}
		return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
	}
	return nil, fmt.Errorf("unsupported JWK key type: %s", k.Kty)
}
