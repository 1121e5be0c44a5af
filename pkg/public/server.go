package public

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hooklinehq/hookline/pkg/executor"
	"github.com/hooklinehq/hookline/pkg/jwt"
	"github.com/hooklinehq/hookline/pkg/probes"
	"github.com/hooklinehq/hookline/pkg/public/middleware"
)

// Server wires the public HTTP surface: the inbound webhook trigger endpoint
// (unauthenticated), the credential test endpoint, and the operator API.
type Server struct {
	store    Store
	executor executor.Executor
	runner   *probes.Runner
	console  *probes.Console
	signer   *jwt.Signer
	router   *mux.Router
}

func NewServer(store Store, exec executor.Executor, runner *probes.Runner, console *probes.Console, signer *jwt.Signer) *Server {
	s := &Server{
		store:    store,
		executor: exec,
		runner:   runner,
		console:  console,
		signer:   signer,
	}

	s.router = s.buildRouter()
	return s
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *mux.Router {
	root := mux.NewRouter()
	root.Use(middleware.Recovery)
	root.Use(middleware.CORS)

	// OPTIONS everywhere so CORS preflight succeeds without auth.
	root.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Public endpoints: external senders cannot carry API tokens.
	root.HandleFunc("/webhook-trigger/{fragment}", s.HandleWebhookTrigger).Methods(http.MethodPost)
	root.HandleFunc("/test-credential", s.HandleTestCredential).Methods(http.MethodPost)

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.TokenAuth(s.signer))

	api.HandleFunc("/webhooks", s.HandleCreateWebhook).Methods(http.MethodPost)
	api.HandleFunc("/webhooks", s.HandleListWebhooks).Methods(http.MethodGet)
	api.HandleFunc("/webhooks/test", s.HandleTestWebhook).Methods(http.MethodPost)
	api.HandleFunc("/webhooks/{id}", s.HandleUpdateWebhook).Methods(http.MethodPatch)
	api.HandleFunc("/webhooks/{id}", s.HandleDeleteWebhook).Methods(http.MethodDelete)
	api.HandleFunc("/webhooks/{id}/deliveries", s.HandleListDeliveries).Methods(http.MethodGet)

	api.HandleFunc("/credentials/test", s.HandleTestCredential).Methods(http.MethodPost)
	api.HandleFunc("/insights", s.HandleListInsights).Methods(http.MethodGet)
	api.HandleFunc("/platforms", s.HandleListPlatforms).Methods(http.MethodGet)

	return root
}
