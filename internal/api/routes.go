package api

import (
	"net/http"

	"github.com/JaimeStill/lector/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	documents := NewDocumentsHandler(domain, runtime)
	agents := NewAgentsHandler(domain, runtime)
	workflow := NewWorkflowHandler(domain, runtime)
	credentials := NewCredentialsHandler(runtime)

	routes.Register(
		mux,
		documents.Routes(),
		agents.Routes(),
		workflow.Routes(),
		credentials.Routes(),
	)
}
