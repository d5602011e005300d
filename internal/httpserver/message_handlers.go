package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chatapi/internal/domain"
	"chatapi/internal/service"
)

type rosterResponse struct {
	Users  []*domain.User `json:"users"`
	Unseen map[string]int `json:"unseen_messages"`
}

func handleRoster(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := CurrentUser(r)
		if viewer == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		users, unseen, err := chatSvc.ListRoster(r.Context(), viewer.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rosterResponse{Users: users, Unseen: unseen})
	}
}

func handleConversation(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := CurrentUser(r)
		if viewer == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		peerID := chi.URLParam(r, "userID")

		msgs, err := chatSvc.FetchConversation(r.Context(), viewer.ID, peerID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
	}
}

func handleMarkSeen(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		messageID := chi.URLParam(r, "messageID")

		if err := chatSvc.MarkSeen(r.Context(), messageID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

type sendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

func handleSendMessage(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sender := CurrentUser(r)
		if sender == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		receiverID := chi.URLParam(r, "userID")

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		msg, err := chatSvc.SendMessage(r.Context(), sender.ID, receiverID, service.SendMessageInput{
			Text:  req.Text,
			Image: req.Image,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}
