package middleware

import (
	"net/http"
	"time"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/model"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "auth_token"

// Session is the verified identity behind a request.
type Session struct {
	UserID int64
	Role   model.Role
}

// SessionFromRequest reads the session cookie and verifies it. ok is false when the
// cookie is absent, the token does not verify, or the role is unknown.
func SessionFromRequest(r *http.Request, codec *crypto.TokenCodec) (Session, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return Session{}, false
	}

	claims, err := codec.Verify(c.Value)
	if err != nil {
		return Session{}, false
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return Session{}, false
	}
	return Session{UserID: claims.UserID, Role: role}, true
}

// SetSessionCookie writes the session cookie for a freshly signed token.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
