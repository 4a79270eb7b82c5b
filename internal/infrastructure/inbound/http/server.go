package delivery_http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/config"
	"blog-post-service/internal/infrastructure/inbound/http/middleware"
	post_http "blog-post-service/internal/infrastructure/inbound/http/post"
	"blog-post-service/internal/infrastructure/inbound/http/views"

	"github.com/gin-gonic/gin"
)

// formFieldsSlack is the body allowance on top of max_upload_bytes for the text fields and
// multipart framing that travel with an upload.
const formFieldsSlack = 64 << 10

type Server struct {
	server  *http.Server
	handler http.Handler
	address string
	port    int
	log     ports.Logger
}

// NewServer builds the router. publicFiles is served under /storage and may be nil.
func NewServer(
	cfg config.HTTPServer,
	postAPI *post_http.PostHTTPService,
	publicFiles http.FileSystem,
	log ports.Logger,
	metrics ports.MetricsProvider,
) (*Server, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	tmpl, err := views.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes
	router.SetHTMLTemplate(tmpl)
	router.Use(
		middleware.Recovery(log, serverError),
		middleware.AccessLogger(log),
		middleware.Metrics(metrics),
	)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/posts")
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if publicFiles != nil {
		router.StaticFS("/storage", publicFiles)
	}
	postAPI.RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		post_http.RenderError(c, http.StatusNotFound, "Not Found")
	})
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		// An override update whose body ran past the limit never had its _method field read.
		if _, err := c.MultipartForm(); bodyTooLarge(err) {
			post_http.RenderError(c, http.StatusRequestEntityTooLarge, "Content Too Large")
			return
		}
		post_http.RenderError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	handler := middleware.LimitBody(middleware.MethodOverride(router), cfg.MaxUploadBytes+formFieldsSlack)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		handler: handler,
		address: cfg.Address,
		port:    cfg.Port,
		log:     log,
	}, nil
}

// Handler exposes the full middleware chain, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.String("address", s.address), slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func serverError(c *gin.Context) {
	post_http.RenderError(c, http.StatusInternalServerError, "Server Error")
}

func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
