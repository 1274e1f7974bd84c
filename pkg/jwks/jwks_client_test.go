package jwks

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func encodeBigInt(i *big.Int) string {
	return base64.RawURLEncoding.EncodeToString(i.Bytes())
}

func TestClient_PublicKey(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(keySet{Keys: []key{
			{Kty: "EC", Kid: "ec-1", Crv: "P-256", X: encodeBigInt(ecKey.X), Y: encodeBigInt(ecKey.Y)},
			{Kty: "RSA", Kid: "rsa-1", N: encodeBigInt(rsaKey.N), E: encodeBigInt(big.NewInt(int64(rsaKey.E)))},
			{Kty: "OKP", Kid: "ed-1"},
		}})
	}))
	defer server.Close()

	ctx := context.Background()
	c := NewClient(5 * time.Second)

	t.Run("ec key", func(t *testing.T) {
		pub, err := c.PublicKey(ctx, server.URL, "ec-1")
		require.NoError(t, err)
		ecPub, ok := pub.(*ecdsa.PublicKey)
		require.True(t, ok)
		require.True(t, ecPub.Equal(&ecKey.PublicKey))
	})

	t.Run("rsa key", func(t *testing.T) {
		pub, err := c.PublicKey(ctx, server.URL, "rsa-1")
		require.NoError(t, err)
		rsaPub, ok := pub.(*rsa.PublicKey)
		require.True(t, ok)
		require.True(t, rsaPub.Equal(&rsaKey.PublicKey))
	})

	t.Run("cached", func(t *testing.T) {
		before := hits.Load()
		_, err := c.PublicKey(ctx, server.URL, "ec-1")
		require.NoError(t, err)
		require.Equal(t, before, hits.Load())
	})

	t.Run("unsupported and missing keys", func(t *testing.T) {
		_, err := c.PublicKey(ctx, server.URL, "ed-1")
		require.ErrorContains(t, err, "unsupported")
		_, err = c.PublicKey(ctx, server.URL, "nope")
		require.ErrorContains(t, err, "kid not found")
	})
}

func TestClient_PublicKey_refreshesAfterTTL(t *testing.T) {
	ctx := context.Background()
	first, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	rotated, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	var current atomic.Pointer[ecdsa.PrivateKey]
	current.Store(first)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		k := current.Load()
		_ = json.NewEncoder(w).Encode(keySet{Keys: []key{
			{Kty: "EC", Kid: "ec-1", Crv: "P-256", X: encodeBigInt(k.X), Y: encodeBigInt(k.Y)},
		}})
	}))
	defer server.Close()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	c := NewClient(5 * time.Second)
	c.Now = func() time.Time { return now }

	pub, err := c.PublicKey(ctx, server.URL, "ec-1")
	require.NoError(t, err)
	require.True(t, pub.(*ecdsa.PublicKey).Equal(&first.PublicKey))

	// same kid, new key
	current.Store(rotated)
	now = now.Add(DefaultKeyTTL - time.Minute)
	pub, err = c.PublicKey(ctx, server.URL, "ec-1")
	require.NoError(t, err)
	require.True(t, pub.(*ecdsa.PublicKey).Equal(&first.PublicKey))

	now = now.Add(time.Minute)
	pub, err = c.PublicKey(ctx, server.URL, "ec-1")
	require.NoError(t, err)
	require.True(t, pub.(*ecdsa.PublicKey).Equal(&rotated.PublicKey))
}

func TestClient_PublicKey_canceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(keySet{})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(5*time.Second).PublicKey(ctx, server.URL, "ec-1")
	require.ErrorIs(t, err, context.Canceled)
}
