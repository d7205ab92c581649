package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/logging"
)

type authHandler struct {
	auth   AuthService
	logger logging.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type meResponse struct {
	UserID string `json:"userId"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(r.Context(), w, h.logger, common.ErrInvalidInput)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	h.logger.Info(r.Context(), "Logged in", "user_id", res.UserID)
	writeJSON(w, http.StatusOK, loginResponse{UserID: res.UserID, Username: res.UserName, Token: res.Token})
}

// Me reports the user behind the supplied token.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {

	token := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
	if token == "" {
		writeError(r.Context(), w, h.logger, errUnauthorized)
		return
	}

	userID, err := h.auth.ValidateTokenAndGetUserID(token)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{UserID: userID})
}
