package ui

import (
	"html/template"
	"net/http"

	"statcompare/app"
	"statcompare/internal"
	"statcompare/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Server is the browser-facing interaction layer
type Server struct {
	router    *gin.Engine
	service   *app.ComparisonService
	templates *template.Template
	logger    *internal.Logger
}

// NewServer parses the embedded templates and registers every route.
// mode is a gin mode ("debug", "release" or "test").
func NewServer(service *app.ComparisonService, logger *internal.Logger, mode string) (*Server, error) {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	gin.SetMode(mode)

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		service:   service,
		templates: templates,
		logger:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger(s.logger.Zap()))
	s.router.Use(gin.Recovery())
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/evaluate", s.handleEvaluate)
	s.router.GET("/healthz", s.handleHealth)
}

// Handler returns the router for use in an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}
