package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie names for the signed session and guest-cart tokens.
const (
	SessionCookie = "ut_session"
	CartCookie    = "ut_cart"
)

// TokenManager issues and verifies the signed HttpOnly cookies that carry the
// user session and the guest cart id. Tokens are HS256 JWTs; anything that
// fails verification is treated as anonymous, never as an error.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewTokenManager creates a token manager. ttl bounds both cookie kinds.
func NewTokenManager(secret string, ttl time.Duration, secure bool) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

func (m *TokenManager) sign(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) parse(raw string) (uuid.UUID, bool) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (m *TokenManager) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// IssueSession sets the session cookie for the given user.
func (m *TokenManager) IssueSession(w http.ResponseWriter, userID uuid.UUID) error {
	signed, err := m.sign(userID.String())
	if err != nil {
		return err
	}
	m.setCookie(w, SessionCookie, signed, int(m.ttl.Seconds()))
	return nil
}

// ClearSession expires the session cookie.
func (m *TokenManager) ClearSession(w http.ResponseWriter) {
	m.setCookie(w, SessionCookie, "", -1)
}

// SessionUserID extracts the authenticated user id from the request, if any.
func (m *TokenManager) SessionUserID(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}
	return m.parse(cookie.Value)
}

// IssueCart sets the guest-cart cookie referencing the given cart.
func (m *TokenManager) IssueCart(w http.ResponseWriter, cartID uuid.UUID) error {
	signed, err := m.sign(cartID.String())
	if err != nil {
		return err
	}
	m.setCookie(w, CartCookie, signed, int(m.ttl.Seconds()))
	return nil
}

// CartID extracts the session-stored cart id from the request, if any.
func (m *TokenManager) CartID(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(CartCookie)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}
	return m.parse(cookie.Value)
}
