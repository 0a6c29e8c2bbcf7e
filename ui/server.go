// Package ui exposes the advisor over HTTP as a JSON API.
package ui

import (
	"time"

	"github.com/gin-gonic/gin"

	"gradstat/adapters/excel"
	"gradstat/internal"
	"gradstat/internal/advisor"
	"gradstat/internal/config"
	"gradstat/internal/detect"
	"gradstat/ports"
)

// Server wires the upload reader, the detector aggregator, the recommendation
// resolver, the result cache and the optional history store behind a gin
// router.
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	reader     *excel.DataReader
	aggregator *advisor.Aggregator
	cache      ports.Cache
	history    ports.HistoryRepository
	logger     *internal.Logger
	started    time.Time
}

// NewServer creates the API server. history may be nil; the history endpoint
// then reports itself unavailable instead of failing requests.
func NewServer(cfg *config.Config, cache ports.Cache, history ports.HistoryRepository, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	gin.SetMode(cfg.Server.GinMode)

	opts := detect.DefaultOptions()
	opts.Classify.SampleCap = cfg.Detection.SampleCap
	opts.Classify.MaxCategories = cfg.Detection.MaxCategories
	opts.Classify.Seed = cfg.Detection.Seed

	s := &Server{
		router:     gin.New(),
		cfg:        cfg,
		reader:     excel.NewDataReader(logger),
		aggregator: advisor.NewAggregator(opts, logger),
		cache:      cache,
		history:    history,
		logger:     logger.Named("api"),
		started:    time.Now(),
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	guide := s.router.Group("/guide")
	{
		guide.POST("/auto-detect", s.handleAutoDetect)
		guide.POST("/recommend", s.handleRecommend)
		guide.GET("/tests", s.handleListTests)
		guide.GET("/tests/:key", s.handleGetTest)
		guide.POST("/report", s.handleReport)
	}

	cache := s.router.Group("/cache")
	{
		cache.GET("/stats", s.handleCacheStats)
		cache.POST("/clear", s.handleCacheClear)
	}

	s.router.GET("/history", s.handleHistory)
	s.router.GET("/health", s.handleHealth)
}

// Start runs the HTTP server until it fails
func (s *Server) Start(addr string) error {
	s.logger.Info("listening on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
