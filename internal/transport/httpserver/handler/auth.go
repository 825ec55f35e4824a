package handler

import (
	"errors"
	"net/http"
	"strings"

	authdomain "fonds-social-go/internal/domain/auth"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  authdomain.User `json:"user"`
	Token string          `json:"token"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Username) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "username est requis")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email est requis")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "mot de passe est requis")
		return
	}

	session, err := h.Auth.Register(r.Context(), authdomain.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrEmailDejaUtilise) {
			h.log.BusinessError("auth.register: duplicate email", err)
			writeError(w, http.StatusConflict, "email_deja_utilise", err.Error())
			return
		}
		h.log.InternalError("auth.register failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{User: session.User, Token: session.Token})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	session, err := h.Auth.Login(r.Context(), authdomain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrIdentifiantsInvalides) {
			h.log.BusinessError("auth.login: invalid credentials", err)
			writeError(w, http.StatusBadRequest, "identifiants_invalides", err.Error())
			return
		}
		h.log.InternalError("auth.login failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: session.User, Token: session.Token})
}
