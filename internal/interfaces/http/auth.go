package http

import (
	"encoding/json"
	"net/http"

	"kopilka/internal/domain/user"
	"kopilka/internal/shared/auth"
	"kopilka/internal/shared/middleware"
)

type AuthHandler struct {
	userService *user.Service
	jwt         *auth.JWT
	botToken    string
}

func NewAuthHandler(userService *user.Service, jwt *auth.JWT, botToken string) *AuthHandler {
	return &AuthHandler{userService: userService, jwt: jwt, botToken: botToken}
}

type TelegramAuthRequest struct {
	InitData string `json:"initData"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleTelegramAuth verifies Mini App init data and issues a JWT.
// The user row is created on first login.
func (h *AuthHandler) HandleTelegramAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	var req TelegramAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
		return
	}
	if req.InitData == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "initData is required")
		return
	}

	tgUser, err := auth.VerifyInitData(req.InitData, h.botToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "invalid init data")
		return
	}

	u, err := h.userService.Login(r.Context(), user.UpsertParams{
		TelegramID: tgUser.ID,
		Username:   tgUser.Username,
		FirstName:  tgUser.FirstName,
		LastName:   tgUser.LastName,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := h.jwt.Generate(u.ID, u.TelegramID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: u})
}

// HandleMe returns the authenticated user
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
