package handlers

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"chatrelay/internal/contextutil"
)

//go:embed usage.md
var usageMarkdown []byte

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Chat relay</title>
</head>
<body>
%s</body>
</html>
`

// HomeHandler serves the usage page at the root path.
type HomeHandler struct {
	page []byte
}

// NewHomeHandler renders the embedded usage document once and returns a
// handler that serves it.
func NewHomeHandler() (*HomeHandler, error) {
	page, err := RenderPage(usageMarkdown)
	if err != nil {
		return nil, err
	}
	return &HomeHandler{page: page}, nil
}

// RenderPage converts markdown to a complete HTML document.
func RenderPage(source []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return []byte(fmt.Sprintf(pageTemplate, buf.String())), nil
}

// ServeHTTP writes the rendered usage page.
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.page); err != nil {
		contextutil.LoggerFromContext(r.Context()).ErrorContext(r.Context(), "failed to write page", "error", err)
	}
}
