package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"

	"github.com/weatherupdate/weatherupdate/internal/config"
	"github.com/weatherupdate/weatherupdate/internal/session"
)

// minTokenLength rejects obviously malformed login attempts before the
// credential comparison.
const minTokenLength = 6

type AuthHandler struct {
	cfg   *config.Config
	codec *session.Codec
}

func NewAuthHandler(cfg *config.Config, codec *session.Codec) *AuthHandler {
	return &AuthHandler{cfg: cfg, codec: codec}
}

type LoginRequest struct {
	Token string `json:"token"`
}

// Login exchanges the shared access token for a session cookie. The
// credential is a single static token; there is no account model behind it.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.cfg.JWTSecret == "" || h.cfg.AppAccessToken == "" {
		log.Printf("ERROR [handlers.Login] JWT_SECRET or APP_ACCESS_TOKEN not configured")
		writeError(w, http.StatusInternalServerError, "Server auth not configured")
		return
	}

	var req LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if len(req.Token) < minTokenLength {
		writeError(w, http.StatusBadRequest, "Missing token")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.cfg.AppAccessToken)) != 1 {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	token, err := h.codec.Issue(session.RoleUser)
	if err != nil {
		log.Printf("ERROR [handlers.Login] failed to sign session token: %v", err)
		writeError(w, http.StatusInternalServerError, "Server auth not configured")
		return
	}

	session.WriteCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout clears the cookie unconditionally. No existing session is required.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type MeResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
}

// Me reports session state. It always answers 200: a missing or invalid
// cookie is a data value here, not an HTTP error.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := session.ReadCookie(r)
	if !ok {
		writeJSON(w, http.StatusOK, MeResponse{Authenticated: false})
		return
	}

	claims, ok := h.codec.Verify(token)
	if !ok {
		writeJSON(w, http.StatusOK, MeResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{Authenticated: true, Role: claims.Role})
}
