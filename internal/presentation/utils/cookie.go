package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/parleychat/parley/internal/domain"
)

const CookieNameSession = "parley_session"

const sessionTTL = 24 * time.Hour

// SetSessionCookie stores the (room, name) binding the way the browser flow
// expects it: base64 JSON, HttpOnly. Non-browser clients can skip cookies
// and pass the binding as query parameters on the websocket URL instead.
func SetSessionCookie(w http.ResponseWriter, sess domain.Session) {
	data, _ := json.Marshal(sess)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieNameSession,
		Value:    base64.StdEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(sessionTTL),
		SameSite: http.SameSiteLaxMode,
		Secure:   true,
	})
}

func GetSessionFromCookie(r *http.Request) domain.Session {
	cookie, err := r.Cookie(CookieNameSession)
	if err != nil {
		return domain.Session{}
	}

	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return domain.Session{}
	}

	var sess domain.Session
	if err := json.Unmarshal(decoded, &sess); err != nil {
		return domain.Session{}
	}
	return sess
}

// ResolveSession prefers the cookie binding and falls back to the room/name
// query parameters.
func ResolveSession(r *http.Request) domain.Session {
	if sess := GetSessionFromCookie(r); sess.Valid() {
		return sess
	}

	return domain.Session{
		Room: r.URL.Query().Get("room"),
		Name: r.URL.Query().Get("name"),
	}
}
