package public

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type createWebhookRequest struct {
	AutomationID string `json:"automation_id"`
}

func (s *Server) HandleCreateWebhook(w http.ResponseWriter, r *http.Request) {
	var request createWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.AutomationID == "" {
		respondError(w, http.StatusBadRequest, "automation_id is required")
		return
	}

	webhook, err := s.store.CreateWebhook(request.AutomationID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create webhook")
		return
	}

	respondJSON(w, http.StatusCreated, webhook)
}

func (s *Server) HandleListWebhooks(w http.ResponseWriter, _ *http.Request) {
	webhooks, err := s.store.ListWebhooks()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list webhooks")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"webhooks": webhooks})
}

type updateWebhookRequest struct {
	Active *bool `json:"active"`
}

func (s *Server) HandleUpdateWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid webhook id")
		return
	}

	var request updateWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Active == nil {
		respondError(w, http.StatusBadRequest, "active flag is required")
		return
	}

	webhook, err := s.store.FindWebhookByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Webhook not found")
		return
	}

	if err := s.store.SetWebhookActive(webhook, *request.Active); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update webhook")
		return
	}

	webhook.Active = *request.Active
	respondJSON(w, http.StatusOK, webhook)
}

func (s *Server) HandleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid webhook id")
		return
	}

	if err := s.store.DeleteWebhook(id); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete webhook")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleListDeliveries(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid webhook id")
		return
	}

	deliveries, err := s.store.ListDeliveries(id, 50)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list deliveries")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"deliveries": deliveries})
}
