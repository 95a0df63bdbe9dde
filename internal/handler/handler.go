package handler

import (
	"encoding/json"
	"io"
	"net/http"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/config"
	"github.com/borda-dev/borda/internal/events"
	"github.com/borda-dev/borda/internal/logger"
	"github.com/borda-dev/borda/internal/service"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	auth  service.AuthService
	board service.BoardService
	user  service.UserService
	hub   *events.Hub
	cfg   *config.Config
}

func New(auth service.AuthService, board service.BoardService, user service.UserService, hub *events.Hub, cfg *config.Config) *Handler {
	return &Handler{auth, board, user, hub, cfg}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// errBody is the error envelope every failed request gets.
type errBody struct {
	Err string `json:"err"`
}

// writeError maps the error kind to its status code and renders the
// {err: message} body.
func writeError(w http.ResponseWriter, err error) {
	code := internal_errors.StatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		// internal details stay in the log
		msg = "Something went wrong"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errBody{Err: msg})
}

func decodeValidate(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid request body", "error", err)
		return internal_errors.BadRequest("Body is invalid json")
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request body failed validation", "error", err)
		return internal_errors.Validation("Required fields missing")
	}
	return nil
}
