package public

import (
	"encoding/json"
	"net/http"
)

type testWebhookRequest struct {
	URL string `json:"url"`
}

// HandleTestWebhook lets an operator send a synthetic unsigned delivery to
// any webhook URL and see latency, status, and body.
func (s *Server) HandleTestWebhook(w http.ResponseWriter, r *http.Request) {
	var request testWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	result := s.console.TestWebhook(r.Context(), request.URL)
	respondJSON(w, http.StatusOK, result)
}
