package server

import (
	"encoding/json"
	"log"
	"net/http"
)

type telegramAuthRequest struct {
	InitData string `json:"init_data" validate:"required"`
}

type telegramAuthResponse struct {
	Token string   `json:"token"`
	User  userInfo `json:"user"`
}

type userInfo struct {
	ID         string `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
}

// handleTelegramAuth verifies Telegram init data and issues a session
// token. Verification failures return 401 without detail; the init data
// itself is never logged.
func (s *Server) handleTelegramAuth(w http.ResponseWriter, r *http.Request) {
	var req telegramAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "init_data is required")
		return
	}

	tgUser, err := s.verifier.Verify(req.InitData)
	if err != nil {
		respondError(w, HTTPStatus(&ErrInvalidInitData{}), "init data verification failed")
		return
	}

	user, err := s.store.GetOrCreateUser(r.Context(), tgUser.ID, tgUser.Username, tgUser.FirstName)
	if err != nil {
		log.Printf("Failed to get or create user: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.TelegramID)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, telegramAuthResponse{
		Token: token,
		User: userInfo{
			ID:         user.ID.String(),
			TelegramID: user.TelegramID,
			Username:   user.Username,
			FirstName:  user.FirstName,
		},
	})
}
