package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/russross/blackfriday/v2"
)

// DocsHandler renders repository markdown docs as HTML
type DocsHandler struct{}

// NewDocsHandler creates a docs handler
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// Only these files are reachable; the doc name comes from the URL.
var allowedDocs = map[string]string{
	"README": "README.md",
	"API":    "docs/API.md",
}

// Serve handles GET /docs/:doc
func (h *DocsHandler) Serve(c *gin.Context) {
	fileName, ok := allowedDocs[c.Param("doc")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	content, err := os.ReadFile(filepath.Join(".", fileName))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	extensions := blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	body := blackfriday.Run(content, blackfriday.WithRenderer(renderer), blackfriday.WithExtensions(extensions))

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Lanka News Docs</title>
<style>
body { font-family: -apple-system, sans-serif; line-height: 1.6; max-width: 900px; margin: 2rem auto; padding: 0 1rem; color: #333; }
pre { background: #f3f4f6; padding: 1rem; border-radius: 6px; overflow-x: auto; }
code { background: #f3f4f6; padding: 0.1rem 0.3rem; border-radius: 4px; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d1d5db; padding: 0.5rem; text-align: left; }
</style>
</head>
<body>`+string(body)+`</body>
</html>`)
}
