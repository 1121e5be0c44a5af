package public

import (
	"encoding/json"
	"net/http"

	"github.com/hooklinehq/hookline/pkg/probes"
)

type testCredentialRequest struct {
	Type             string            `json:"type"`
	PlatformName     string            `json:"platform_name"`
	CredentialFields map[string]string `json:"credential_fields"`
	UserID           string            `json:"user_id"`
}

// HandleTestCredential runs a credential probe. A malformed JSON body is a
// credential-type failure reported in the outcome shape, not a bare 400 —
// the dashboard renders outcomes, not transport errors.
func (s *Server) HandleTestCredential(w http.ResponseWriter, r *http.Request) {
	var request testCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusOK, probes.Outcome{
			Success:     false,
			UserMessage: probes.UserMessage("", probes.ErrorTypeCredential),
			TechnicalDetails: map[string]any{
				"error_type": string(probes.ErrorTypeCredential),
			},
		})
		return
	}

	outcome := s.runner.Run(r.Context(), request.PlatformName, request.CredentialFields)
	respondJSON(w, http.StatusOK, outcome)
}

func (s *Server) HandleListInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.store.ListInsights(r.URL.Query().Get("platform"), 100)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list insights")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"insights": insights})
}

func (s *Server) HandleListPlatforms(w http.ResponseWriter, _ *http.Request) {
	platforms, err := s.store.ListPlatforms()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list platforms")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"platforms": platforms})
}
