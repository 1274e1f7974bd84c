package api

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/pkg/jwks"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// TokenClaims is the subset of identity-token claims the service relies on.
type TokenClaims struct {
	Subject   string  `json:"sub"`
	Email     *string `json:"email"`
	Issuer    string  `json:"iss"`
	ExpiresAt int64   `json:"exp"`
	IssuedAt  int64   `json:"iat"`
	UserID    string  `json:"user_id"`
}

// TokenVerifier turns a bearer token into verified claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}

type tokenVerifierHandler struct {
	Secret     string
	JwksUrl    string
	JwksClient *jwks.Client
	Now        func() time.Time
}

func NewTokenVerifier(secret, jwksUrl string) TokenVerifier {
	return tokenVerifierHandler{
		Secret:     secret,
		JwksUrl:    jwksUrl,
		JwksClient: jwks.NewClient(10 * time.Second),
		Now:        time.Now,
	}
}

func decodeJWTHeaderAndClaimsUnverified(jwtStr string) (map[string]any, *TokenClaims, error) {
	parts := strings.Split(jwtStr, ".")
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("invalid JWT format")
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT header: %w", err)
	}
	var header map[string]any
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JWT header: %w", err)
	}

	claimsBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT claims: %w", err)
	}
	var claims TokenClaims
	if err := json.Unmarshal(claimsBytes, &claims); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JWT claims: %w", err)
	}

	return header, &claims, nil
}

// Verify accepts HS256 tokens signed with the shared secret, and ES256 or
// RS256 tokens whose key is published in the configured JWKS. Keys are
// never looked up from anything the token itself names.
func (h tokenVerifierHandler) Verify(ctx context.Context, jwtStr string) (*TokenClaims, error) {
	header, _, err := decodeJWTHeaderAndClaimsUnverified(jwtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	var token *jwt.Token
	alg, _ := header["alg"].(string)
	switch alg {
	case "HS256":
		if h.Secret == "" {
			return nil, fmt.Errorf("failed to parse token: no shared secret configured")
		}
		token, err = jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(h.Secret), nil
		})
	case "ES256", "RS256":
		if h.JwksUrl == "" {
			return nil, fmt.Errorf("failed to parse token: no JWKS url configured for %s", alg)
		}
		kid, _ := header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("failed to parse token: missing kid")
		}
		token, err = jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
			switch token.Method.(type) {
			case *jwt.SigningMethodECDSA, *jwt.SigningMethodRSA:
			default:
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return h.JwksClient.PublicKey(ctx, h.JwksUrl, kid)
		})
	default:
		return nil, fmt.Errorf("failed to parse token: unsupported alg %q", alg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse claims")
	}
	claimsJSON, err := json.Marshal(mapClaims)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claims: %w", err)
	}
	var claims TokenClaims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claims: %w", err)
	}

	if claims.ExpiresAt == 0 || h.Now().UTC().Unix() > claims.ExpiresAt {
		return nil, fmt.Errorf("jwt is expired")
	}
	if claims.Subject == "" {
		claims.Subject = claims.UserID
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("jwt has no subject")
	}

	return &claims, nil
}

// authMiddleware rejects requests without a valid bearer token and stores
// the verified user in the gin context.
func (m ApiHandler) authMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || strings.TrimSpace(tokenStr) == "" {
		returnErrorJson(domain.NewError(domain.KindUnauthenticated, "missing bearer token"), c)
		return
	}

	claims, err := m.TokenVerifier.Verify(c.Request.Context(), strings.TrimSpace(tokenStr))
	if err != nil {
		returnErrorJson(domain.WrapError(domain.KindUnauthenticated, err, "invalid token"), c)
		return
	}

	c.Set("userID", claims.Subject)
	if claims.Email != nil {
		c.Set("userEmail", *claims.Email)
	}
	c.Next()
}

// userIDFromContext returns the user set by authMiddleware.
func userIDFromContext(c *gin.Context) (string, error) {
	ginUserID, ok := c.Get("userID")
	if !ok {
		return "", domain.NewError(domain.KindUnauthenticated, "must be logged in")
	}
	userID, ok := ginUserID.(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", domain.NewError(domain.KindUnauthenticated, "misformatted user id")
	}
	return userID, nil
}
