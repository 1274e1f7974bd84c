package api

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

func TestTokenVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	verifier := NewTokenVerifier(testSecret, "")

	t.Run("hs256", func(t *testing.T) {
		claims, err := verifier.Verify(ctx, validToken(t, "u1"))
		require.NoError(t, err)
		require.Equal(t, "u1", claims.Subject)
		require.Equal(t, "u1@example.com", *claims.Email)
	})

	t.Run("user_id claim", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"user_id": "firebase-user",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		claims, err := verifier.Verify(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "firebase-user", claims.Subject)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("other"))
		require.NoError(t, err)
		_, err = verifier.Verify(ctx, token)
		require.Error(t, err)
	})

	t.Run("missing exp", func(t *testing.T) {
		_, err := verifier.Verify(ctx, signTestToken(t, jwt.MapClaims{"sub": "u1"}))
		require.ErrorContains(t, err, "expired")
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := verifier.Verify(ctx, signTestToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}))
		require.ErrorContains(t, err, "subject")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "not-a-token")
		require.Error(t, err)
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = verifier.Verify(ctx, token)
		require.ErrorContains(t, err, "unsupported alg")
	})
}

// newJwksServer publishes key under kid and counts requests.
func newJwksServer(t *testing.T, key *ecdsa.PrivateKey, kid string) (*httptest.Server, *atomic.Int32) {
	hits := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "EC",
				"crv": "P-256",
				"kid": kid,
				"x":   base64.RawURLEncoding.EncodeToString(key.X.Bytes()),
				"y":   base64.RawURLEncoding.EncodeToString(key.Y.Bytes()),
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server, hits
}

func signES256(t *testing.T, key *ecdsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestTokenVerifier_Verify_es256(t *testing.T) {
	ctx := context.Background()

	trustedKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	trusted, _ := newJwksServer(t, trustedKey, "key-1")
	foreign, foreignHits := newJwksServer(t, otherKey, "key-1")
	jwksURL := trusted.URL + "/.well-known/jwks.json"

	t.Run("configured jwks", func(t *testing.T) {
		signed := signES256(t, trustedKey, "key-1", jwt.MapClaims{
			"sub": "u2",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		claims, err := NewTokenVerifier("", jwksURL).Verify(ctx, signed)
		require.NoError(t, err)
		require.Equal(t, "u2", claims.Subject)
	})

	t.Run("no jwks configured rejects issuer-named keys", func(t *testing.T) {
		signed := signES256(t, otherKey, "key-1", jwt.MapClaims{
			"sub": "victim-user",
			"iss": foreign.URL,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := NewTokenVerifier(testSecret, "").Verify(ctx, signed)
		require.ErrorContains(t, err, "no JWKS url configured")
		require.Equal(t, int32(0), foreignHits.Load())
	})

	t.Run("foreign key with configured jwks", func(t *testing.T) {
		signed := signES256(t, otherKey, "key-1", jwt.MapClaims{
			"sub": "victim-user",
			"iss": foreign.URL,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := NewTokenVerifier("", jwksURL).Verify(ctx, signed)
		require.Error(t, err)
		require.Equal(t, int32(0), foreignHits.Load())
	})

	t.Run("hs256 without secret", func(t *testing.T) {
		_, err := NewTokenVerifier("", jwksURL).Verify(ctx, validToken(t, "u1"))
		require.ErrorContains(t, err, "no shared secret")
	})
}
