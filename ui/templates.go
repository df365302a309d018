package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html templates/fragments/*.html
var templateFiles embed.FS

const (
	pageTemplate      = "index.html"
	workspaceTemplate = "workspace.html"
)

func parseTemplates() (*template.Template, error) {
	templates, err := template.New("").ParseFS(templateFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

// renderTemplate executes into a buffer first so a template error never
// leaves a half-written response.
func (s *Server) renderTemplate(c *gin.Context, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("[renderTemplate] %s: %v", name, err)
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "template rendering failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
