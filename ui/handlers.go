package ui

import (
	"io"
	"net/http"

	"statcompare/app"
	"statcompare/domain/stats"
	"statcompare/internal/errors"
	"statcompare/ui/middleware"

	"github.com/gin-gonic/gin"
)

const (
	uploadField = "dataset"
	// pickedField echoes the previous selection back in pick order
	pickedField = "picked"
)

// handleIndex renders the empty page; nothing is shown until a file arrives
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, pageTemplate, emptyView())
}

// handleEvaluate re-reads the posted file and selections and recomputes
// everything. HTMX requests get only the workspace fragment.
func (s *Server) handleEvaluate(c *gin.Context) {
	view := s.evaluate(c)
	if c.GetHeader("HX-Request") == "true" {
		s.renderTemplate(c, http.StatusOK, workspaceTemplate, view)
		return
	}
	s.renderTemplate(c, http.StatusOK, pageTemplate, view)
}

func (s *Server) evaluate(c *gin.Context) workspaceView {
	upload, ok, err := readUpload(c)
	if err != nil {
		s.logger.Warn("[handleEvaluate] request %s: %v", middleware.GetRequestID(c), err)
		return errorView(err)
	}
	if !ok {
		return emptyView()
	}

	sel := stats.Selection{
		Test:        stats.ParseTestKind(c.PostForm("test")),
		Columns:     pickOrder(c.PostFormArray(pickedField), c.PostFormArray("columns")),
		GroupColumn: c.PostForm("group_column"),
	}
	out, err := s.service.Evaluate(c.Request.Context(), upload, sel)
	if err != nil {
		s.logger.Info("[handleEvaluate] request %s: %s rejected: %v", middleware.GetRequestID(c), upload.Filename, err)
		return errorView(err)
	}
	return outcomeView(out)
}

// pickOrder orders the checked columns the way they were picked: columns
// still checked keep their earlier position and newly checked ones follow
// in form order.
func pickOrder(picked, checked []string) []string {
	isChecked := make(map[string]bool, len(checked))
	for _, c := range checked {
		isChecked[c] = true
	}

	seen := make(map[string]bool, len(checked))
	out := make([]string, 0, len(checked))
	for _, group := range [][]string{picked, checked} {
		for _, c := range group {
			if isChecked[c] && !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// readUpload returns ok=false when no file was posted
func readUpload(c *gin.Context) (app.Upload, bool, error) {
	header, err := c.FormFile(uploadField)
	if err == http.ErrMissingFile {
		return app.Upload{}, false, nil
	}
	if err != nil {
		return app.Upload{}, false, errors.InvalidInput("malformed upload: " + err.Error())
	}

	f, err := header.Open()
	if err != nil {
		return app.Upload{}, false, errors.Wrap(err, "failed to open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return app.Upload{}, false, errors.Wrap(err, "failed to read upload")
	}
	return app.Upload{Filename: header.Filename, Data: data}, true, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
