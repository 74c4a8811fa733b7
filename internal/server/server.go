package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/opportunity-matcher/internal/catalog"
	"github.com/jonathan/opportunity-matcher/internal/matching"
	"github.com/jonathan/opportunity-matcher/internal/store"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

// OpportunityLister loads the coarse-filtered candidate set for a ranking run
type OpportunityLister interface {
	ListForMatching(ctx context.Context, prefs *types.Preferences, filters *types.Filters) ([]types.OpportunityRecord, error)
}

// OpportunityInserter persists a batch of opportunity records
type OpportunityInserter interface {
	InsertBatch(ctx context.Context, records []types.OpportunityRecord) ([]string, error)
}

// SkillEnsurer upserts skills into the catalog by canonical key
type SkillEnsurer interface {
	EnsureSkill(ctx context.Context, name string) (catalog.Skill, error)
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	RedisAddr   string
	CacheTTL    time.Duration
	Weights     matching.Weights
	Penalties   matching.Penalties
	Logger      *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	opportunities OpportunityLister
	inserter      OpportunityInserter
	skills        SkillEnsurer
	canon         *catalog.Canonicalizer
	engine        *matching.Engine
	validate      *validator.Validate
	logger        *zap.Logger
	closeStore    func()
}

// New creates a server wired to PostgreSQL and, when configured, Redis
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opportunities, err := store.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var cache *catalog.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = catalog.NewCache(client, cfg.CacheTTL)
	}

	canon := catalog.NewCanonicalizer(catalog.DefaultAliases)
	skillCatalog := catalog.NewStore(opportunities.Pool(), canon, cache)

	engine := matching.NewEngine(matching.EngineConfig{
		Weights:       cfg.Weights,
		Penalties:     cfg.Penalties,
		Skills:        skillCatalog,
		Organizations: skillCatalog,
		Logger:        logger,
	})

	s := newServer(opportunities, opportunities, skillCatalog, canon, engine, logger)
	s.closeStore = opportunities.Close
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// newServer wires handlers against the given collaborators; used directly by tests
func newServer(lister OpportunityLister, inserter OpportunityInserter, skills SkillEnsurer, canon *catalog.Canonicalizer, engine *matching.Engine, logger *zap.Logger) *Server {
	return &Server{
		opportunities: lister,
		inserter:      inserter,
		skills:        skills,
		canon:         canon,
		engine:        engine,
		validate:      validator.New(),
		logger:        logger,
	}
}

// routes builds the request multiplexer
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /opportunities/batch", s.handleBatchInsert)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.closeStore != nil {
		s.closeStore()
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
