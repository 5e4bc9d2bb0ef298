// Package v2 provides the second generation of the parrot API. It carries
// the same capability set as v1 (health, greeting, echo) with a revised
// echo request schema: the text field is now named utterance. The package
// is self-contained and can be mounted under any path prefix.
package v2

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parrotdev/parrot/internal/api/common"
	"github.com/parrotdev/parrot/internal/service"
)

// EchoRequest is the v2 echo request body.
type EchoRequest struct {
	Utterance string `json:"utterance"`
}

// EchoResponse is the echo response body. The message is byte-identical to
// the submitted utterance.
type EchoResponse struct {
	Message string `json:"message"`
}

// HelloWorldResponse is the hello-world response body.
type HelloWorldResponse struct {
	Message string `json:"message"`
}

// Routes handles HTTP requests for the v2 API.
type Routes struct {
	service service.Core
}

// NewRoutes creates a new Routes instance with the given service.
func NewRoutes(svc service.Core) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates and configures the HTTP router for the v2 API.
func Router(svc service.Core) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	// /health and /healthz are aliases: two registrations, one handler.
	health := common.HealthHandler(svc)
	r.Get("/health", health)
	r.Get("/healthz", health)

	r.Get("/hello-world", routes.helloWorld)
	r.Post("/echo", routes.echo)

	r.Get("/openapi.json", serveOpenAPIJSON)
	r.Get("/openapi.yaml", serveOpenAPIYAML)
	r.Get("/docs", serveDocs)

	return r
}

// helloWorld handles GET /hello-world. It never fails.
func (routes *Routes) helloWorld(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, HelloWorldResponse{
		Message: routes.service.HelloWorld(),
	}, http.StatusOK)
}

// echo handles POST /echo. The utterance field is required and must be
// non-empty; it is echoed back verbatim, with no transformation.
func (*Routes) echo(w http.ResponseWriter, r *http.Request) {
	var req EchoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteErrorResponse(w, "Invalid request body: must be JSON", http.StatusBadRequest)
		return
	}
	if req.Utterance == "" {
		common.WriteValidationError(w, "utterance", "utterance is required and must be non-empty")
		return
	}

	common.WriteJSONResponse(w, EchoResponse{Message: req.Utterance}, http.StatusOK)
}

// serveOpenAPIJSON handles GET /openapi.json.
func serveOpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, Spec(), http.StatusOK)
}

// serveOpenAPIYAML handles GET /openapi.yaml.
func serveOpenAPIYAML(w http.ResponseWriter, _ *http.Request) {
	data, err := SpecYAML()
	if err != nil {
		slog.Error("Failed to render OpenAPI YAML", "error", err)
		common.WriteErrorResponse(w, "Failed to render OpenAPI specification", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// serveDocs handles GET /docs with a browsable Swagger UI page. The spec
// URL is relative so the page works under any mount prefix.
func serveDocs(w http.ResponseWriter, _ *http.Request) {
	common.WriteDocsPage(w, Title, "openapi.json")
}
