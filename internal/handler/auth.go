package handler

import (
	"net/http"

	"github.com/borda-dev/borda/internal/logger"
	"github.com/borda-dev/borda/internal/service"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullname" validate:"required"`
	ImgUrl   string `json:"imgUrl"`
}

type googleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds loginRequest
	if err := decodeValidate(r.Body, &creds); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.auth.Login(creds.Username, creds.Password)
	if err != nil {
		logger.Log.Warn("login failed", "username", creds.Username)
		writeError(w, err)
		return
	}

	h.setLoginCookie(w, token)
	writeJSON(w, user)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.auth.Signup(service.SignupCredentials{
		Username: body.Username,
		Password: body.Password,
		FullName: body.FullName,
		ImgUrl:   body.ImgUrl,
	})
	if err != nil {
		logger.Log.Warn("signup failed", "username", body.Username, "error", err)
		writeError(w, err)
		return
	}

	h.setLoginCookie(w, token)
	writeJSON(w, user)
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var body googleLoginRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.auth.GoogleLogin(body.Token)
	if err != nil {
		logger.Log.Warn("google login failed", "error", err)
		writeError(w, err)
		return
	}

	h.setLoginCookie(w, token)
	writeJSON(w, user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "loginToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	})
	writeJSON(w, "Logged out")
}

func (h *Handler) setLoginCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "loginToken",
		Value:    token,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
