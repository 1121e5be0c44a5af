package public

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hooklinehq/hookline/pkg/crypto"
	"github.com/hooklinehq/hookline/pkg/executor"
)

const signatureHeader = "X-Webhook-Signature"

// HandleWebhookTrigger is the inbound delivery endpoint:
// POST /webhook-trigger/{fragment}?automation_id={id}.
//
// Signature policy: a request carrying X-Webhook-Signature is always verified
// against the webhook secret and rejected on mismatch. A request without the
// header is accepted unsigned — the test console and senders that cannot sign
// rely on this path. Rejected signatures are recorded in the delivery log
// (status 401) but never touch the trigger counter.
func (s *Server) HandleWebhookTrigger(w http.ResponseWriter, r *http.Request) {
	fragment := mux.Vars(r)["fragment"]
	automationID := r.URL.Query().Get("automation_id")
	if automationID == "" || fragment == "" {
		respondError(w, http.StatusBadRequest, "Missing automation_id or webhook identifier")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	webhook, err := s.store.FindActiveWebhook(automationID, fragment)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Webhook not found or inactive")
		return
	}
	if err != nil {
		log.Errorf("failed to look up webhook for automation %s: %v", automationID, err)
		respondError(w, http.StatusInternalServerError, "Failed to look up webhook")
		return
	}

	if signature := r.Header.Get(signatureHeader); signature != "" {
		if !crypto.VerifySignature(webhook.Secret, body, signature) {
			s.logDelivery(webhook.ID, body, http.StatusUnauthorized, "Invalid webhook signature")
			respondError(w, http.StatusUnauthorized, "Invalid webhook signature")
			return
		}
	}

	trigger := executor.TriggerPayload{
		Source:    "webhook",
		WebhookID: webhook.ID.String(),
		Payload:   json.RawMessage(body),
		Headers:   flattenHeaders(r.Header),
		Timestamp: time.Now().UTC(),
	}

	executionID, execErr := s.executor.Execute(r.Context(), trigger)

	// Delivery was accepted: the counter and the log reflect that even when
	// the executor fails or the caller has already disconnected.
	if err := s.store.RecordTrigger(webhook); err != nil {
		log.Errorf("failed to record trigger for webhook %s: %v", webhook.ID, err)
	}

	if execErr != nil {
		s.logDelivery(webhook.ID, body, http.StatusInternalServerError, execErr.Error())
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Automation execution failed",
			"details": execErr.Error(),
		})
		return
	}

	s.logDelivery(webhook.ID, body, http.StatusOK, "Automation executed")
	respondJSON(w, http.StatusOK, map[string]string{
		"message":      "Webhook delivered",
		"execution_id": executionID,
		"status":       "success",
	})
}

// logDelivery appends to the audit trail. Log writes are best-effort and
// never alter the response to the sender.
func (s *Server) logDelivery(webhookID uuid.UUID, payload []byte, statusCode int, responseBody string) {
	if err := s.store.AddDelivery(webhookID, payload, statusCode, responseBody); err != nil {
		log.Errorf("failed to log delivery for webhook %s: %v", webhookID, err)
	}
}

func flattenHeaders(headers http.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for name, values := range headers {
		if len(values) > 0 {
			flat[name] = values[0]
		}
	}
	return flat
}
