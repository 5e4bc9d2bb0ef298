package v2

import (
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Static identity of the v2 API surface.
const (
	Title          = "Parrot API"
	Version        = "2.0.0"
	ContactName    = "Parrot maintainers"
	ContactURL     = "https://github.com/parrotdev/parrot"
	TermsOfService = "https://parrot.readthedocs.io/en/latest/"
)

var (
	specOnce   sync.Once
	cachedSpec *openapi3.T
)

// Spec returns the OpenAPI description of the v2 API. The document is built
// once and must be treated as read-only by callers.
func Spec() *openapi3.T {
	specOnce.Do(func() {
		cachedSpec = buildSpec()
	})
	return cachedSpec
}

// SpecYAML renders the v2 OpenAPI description as YAML. The document is
// marshalled to JSON first so field names match the JSON encoding exactly.
func SpecYAML() ([]byte, error) {
	data, err := json.Marshal(Spec())
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func buildSpec() *openapi3.T {
	healthSchema := openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema().WithEnum("UP", "DOWN")).
		WithProperty("reason", openapi3.NewStringSchema())
	healthSchema.Required = []string{"status"}

	messageSchema := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema())
	messageSchema.Required = []string{"message"}

	// v2 renamed the echo request field from text to utterance. The
	// response shape is unchanged.
	echoRequestSchema := openapi3.NewObjectSchema().
		WithProperty("utterance", openapi3.NewStringSchema().WithMinLength(1))
	echoRequestSchema.Required = []string{"utterance"}

	healthResponses := openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Service is healthy").
				WithJSONSchema(healthSchema),
		}),
		openapi3.WithStatus(500, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Service is unhealthy").
				WithJSONSchema(healthSchema),
		}),
	)

	healthOp := func(operationID string) *openapi3.Operation {
		return &openapi3.Operation{
			OperationID: operationID,
			Summary:     "Check service health",
			Tags:        []string{"Observability"},
			Responses:   healthResponses,
		}
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   Title,
			Version: Version,
			Contact: &openapi3.Contact{
				Name: ContactName,
				URL:  ContactURL,
			},
			TermsOfService: TermsOfService,
		},
		Tags: openapi3.Tags{
			{Name: "Basics", Description: "Greeting and echo operations"},
			{Name: "Observability", Description: "Health probes"},
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/health", &openapi3.PathItem{
				Get: healthOp("health"),
			}),
			openapi3.WithPath("/healthz", &openapi3.PathItem{
				Get: healthOp("healthz"),
			}),
			openapi3.WithPath("/hello-world", &openapi3.PathItem{
				Get: &openapi3.Operation{
					OperationID: "helloWorld",
					Summary:     "Return the hello world message",
					Tags:        []string{"Basics"},
					Responses: openapi3.NewResponses(
						openapi3.WithStatus(200, &openapi3.ResponseRef{
							Value: openapi3.NewResponse().
								WithDescription("The hello world message").
								WithJSONSchema(messageSchema),
						}),
					),
				},
			}),
			openapi3.WithPath("/echo", &openapi3.PathItem{
				Post: &openapi3.Operation{
					OperationID: "echo",
					Summary:     "Echo back the provided utterance",
					Tags:        []string{"Basics"},
					RequestBody: &openapi3.RequestBodyRef{
						Value: openapi3.NewRequestBody().
							WithRequired(true).
							WithJSONSchema(echoRequestSchema),
					},
					Responses: openapi3.NewResponses(
						openapi3.WithStatus(200, &openapi3.ResponseRef{
							Value: openapi3.NewResponse().
								WithDescription("The echoed utterance").
								WithJSONSchema(messageSchema),
						}),
						openapi3.WithStatus(422, &openapi3.ResponseRef{
							Value: openapi3.NewResponse().
								WithDescription("Validation error"),
						}),
					),
				},
			}),
		),
	}
}
