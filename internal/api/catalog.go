package api

import (
	"fmt"
	"net/http"

	"github.com/parrotdev/parrot/internal/api/common"
	v1 "github.com/parrotdev/parrot/internal/api/v1"
	v2 "github.com/parrotdev/parrot/internal/api/v2"
)

// VersionDescriptor advertises one mounted API version. It is discovery
// metadata only and never gates routing.
type VersionDescriptor struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ExternalDocs string `json:"externalDocs"`
}

// Catalog is the ordered list of mounted API versions served at the
// gateway root. It is constructed once at startup and read-only afterwards.
type Catalog struct {
	Versions []VersionDescriptor `json:"versions"`
}

// NewCatalog builds the version catalog. baseURL is the externally
// reachable address the server binds to; the advertised documentation
// links point at each version's own docs page under that address.
func NewCatalog(baseURL string) *Catalog {
	return &Catalog{
		Versions: []VersionDescriptor{
			{
				Name:         "v1",
				Description:  fmt.Sprintf("%s %s", v1.Title, v1.Version),
				ExternalDocs: baseURL + "/v1/docs",
			},
			{
				Name:         "v2",
				Description:  fmt.Sprintf("%s %s", v2.Title, v2.Version),
				ExternalDocs: baseURL + "/v2/docs",
			},
		},
	}
}

// handler serves GET / with the catalog.
func (c *Catalog) handler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, c, http.StatusOK)
}
