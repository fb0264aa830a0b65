package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set on login/registration.
const CookieName = "feedback_session"

// ==========================
// Manager
// ==========================
// Manager holds at most one authenticated username per client, carried as an
// HS256-signed JWT inside an HttpOnly cookie.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager builds a session manager. secure controls the cookie Secure flag
// (set it when serving HTTPS).
func NewManager(secret []byte, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: secret, ttl: ttl, secure: secure}
}

// ==========================
// Establish
// ==========================
func (m *Manager) Establish(w http.ResponseWriter, username string) error {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ==========================
// Current
// ==========================
// Current returns the username carried by a valid session cookie. A missing,
// expired, or tampered cookie yields ("", false).
func (m *Manager) Current(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", false
	}

	return username, true
}

// ==========================
// Clear
// ==========================
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
