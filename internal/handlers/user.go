package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	userHeader    = "X-User-ID"
	userCookie    = "commendai_uid"
	userCookieAge = 365 * 24 * 60 * 60
)

// userRef identifies the caller: the X-User-ID header, else the
// commendai_uid cookie, else a fresh id that is set as the cookie. It must
// run before the response status is written.
func userRef(w http.ResponseWriter, r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(userHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(userCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   userCookieAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
