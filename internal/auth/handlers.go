package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scovillecup/backend-scoville/internal/common"
)

// Handlers exposes the HTTP surface of the auth service.
type Handlers struct {
	Service  *Service
	Validate *validator.Validate
}

func NewHandlers(svc *Service) *Handlers {
	return &Handlers{Service: svc, Validate: validator.New()}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login exchanges credentials for an access token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid login payload", nil)
		return
	}
	token, expiresAt, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "login failed", nil)
		return
	}
	common.JSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// Me returns the identity bound to the current token.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := common.AccountID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing authentication", nil)
		return
	}
	email, _ := common.AuthEmail(r.Context())
	common.JSON(w, http.StatusOK, map[string]any{
		"account_id": accountID,
		"email":      email,
	})
}
