package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/franckalain/nutritionguard/internal/analysis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// Options configures the HTTP surface
type Options struct {
	Port         string
	StaticDir    string
	Debug        bool // expose raw model output and error details to clients
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	service  *analysis.Service
	opts     Options
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func New(service *analysis.Service, opts Options, logger *zap.Logger) *Server {
	if opts.Debug {
		logger.Debug("Debug responses enabled")
	}
	return &Server{
		service: service,
		opts:    opts,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS is open for every origin as well
			},
		},
	}
}

// Router builds the gin engine with every route and middleware installed.
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(requestID())
	router.Use(requestLogger(s.logger))
	router.Use(recovery(s.logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
		ExposeHeaders:   []string{sourceHeader, requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.POST("/analyze-food", bodyLimit(s.opts.MaxBodyBytes), s.handleAnalyzeFood)
		api.GET("/health", s.handleAPIHealth)
	}
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", s.handleWebSocket)

	// Serve static files
	files := http.FileServer(http.Dir(s.opts.StaticDir))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})

	return router
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         ":" + s.opts.Port,
		Handler:      s.Router(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server",
			zap.String("addr", srv.Addr),
			zap.String("model", s.service.ModelName()),
			zap.String("locale", s.service.Catalog().Tag),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
	}

	s.logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	s.logger.Info("Server exited")
	return nil
}
