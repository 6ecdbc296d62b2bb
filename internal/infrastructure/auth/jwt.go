package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/darkbluein/locale-store-service/internal/config"
	"github.com/darkbluein/locale-store-service/internal/domain"
)

type Claims struct {
	Source string `json:"source"`
	jwt.StandardClaims
}

// JWTManager is both the identity resolver for inbound credentials and the
// token issuer for newly registered stores.
type JWTManager struct {
	secret        []byte
	refreshSecret []byte
	tokenTTL      time.Duration
	refreshTTL    time.Duration
}

func NewJWTManager(cfg config.Auth) *JWTManager {
	tokenTTL := cfg.TokenTTL
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL == 0 {
		refreshTTL = 30 * 24 * time.Hour
	}

	return &JWTManager{
		secret:        []byte(cfg.Secret),
		refreshSecret: []byte(cfg.RefreshSecret),
		tokenTTL:      tokenTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *JWTManager) Issue(store *domain.StoreProfile) (string, string, error) {
	token, err := m.sign(store.ID, domain.OriginStore, m.secret, m.tokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	refreshToken, err := m.sign(store.ID, domain.OriginStore, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return token, refreshToken, nil
}

func (m *JWTManager) Resolve(tokenString string, requireStoreOrigin bool) (*domain.Principal, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	if requireStoreOrigin && !strings.HasPrefix(claims.Source, domain.OriginStore) {
		return nil, domain.ErrForbidden
	}

	return &domain.Principal{
		ID:     claims.Subject,
		Origin: claims.Source,
	}, nil
}

func (m *JWTManager) sign(subject, source string, secret []byte, ttl time.Duration) (string, error) {
	claims := &Claims{
		Source: source,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
