package common

import (
	"fmt"
	"html"
	"net/http"
)

const docsPageTemplate = `<!DOCTYPE html>
<html>
<head>
  <title>%s - Docs</title>
  <meta charset="utf-8"/>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css"/>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"});
  </script>
</body>
</html>
`

// WriteDocsPage writes the human-browsable documentation page for an API
// version. specURL should be relative (e.g. "openapi.json") so the page
// resolves against whatever prefix the version is mounted under.
func WriteDocsPage(w http.ResponseWriter, title, specURL string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, docsPageTemplate, html.EscapeString(title), specURL)
}
