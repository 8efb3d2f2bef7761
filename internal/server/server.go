package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/observability/metrics"
	"github.com/FACorreiaa/hmhy-portal/internal/app/session"
	database "github.com/FACorreiaa/hmhy-portal/internal/db"
	"github.com/FACorreiaa/hmhy-portal/internal/pkg/config"
)

const janitorInterval = 5 * time.Minute

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	dbPool   *pgxpool.Pool
	redis    *redis.Client
	sessions *session.Manager
	client   *apiclient.Client
	router   http.Handler
	stop     context.CancelFunc
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	ctx := context.Background()
	store, err := s.setupSessionStore(ctx)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to setup session store: %w", err)
	}
	s.sessions = session.NewManager(store, cfg.Session.TTL, logger)

	s.client, err = apiclient.New(apiclient.Config{
		BaseURL:     cfg.API.BaseURL,
		RefreshPath: cfg.API.RefreshPath,
		Timeout:     cfg.API.Timeout,
		Headers:     cfg.API.Headers,
	}, logger)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	janitorCtx, stop := context.WithCancel(ctx)
	s.stop = stop
	go s.janitor(janitorCtx)

	return s, nil
}

func (s *Server) setupSessionStore(ctx context.Context) (session.Store, error) {
	s.logger.Info("Setting up session store", zap.String("driver", s.cfg.Session.Driver))

	switch s.cfg.Session.Driver {
	case config.SessionDriverPostgres:
		pool, err := s.setupDatabase(ctx)
		if err != nil {
			return nil, err
		}
		s.dbPool = pool
		return session.NewPostgresStore(pool), nil
	case config.SessionDriverRedis:
		s.redis = session.NewRedisClient(s.cfg.Repositories.Redis, s.logger)
		return session.NewRedisStore(s.redis, s.cfg.Session.TTL), nil
	default:
		return session.NewMemoryStore(s.cfg.Session.TTL), nil
	}
}

// setupDatabase initializes the database connection and runs migrations
func (s *Server) setupDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	pgCfg := s.cfg.Repositories.Postgres
	connURL, err := database.ConnectionURL(pgCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database configuration: %w", err)
	}

	pool, err := database.Init(ctx, connURL, pgCfg, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	if !database.WaitForDB(ctx, pool, s.logger) {
		pool.Close()
		return nil, fmt.Errorf("postgres at %s:%s is unreachable", pgCfg.Host, pgCfg.Port)
	}
	s.logger.Info("Connected to Postgres",
		zap.String("host", pgCfg.Host),
		zap.String("port", pgCfg.Port),
		zap.String("database", pgCfg.DB))

	if err = database.RunMigrations(connURL, s.logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return pool, nil
}

// janitor drops expired sessions where the store does not expire them itself
// and keeps the active sessions gauge current.
func (s *Server) janitor(ctx context.Context) {
	store := s.sessions.Store()
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		if p, ok := store.(session.Purger); ok {
			if n, err := p.PurgeExpired(ctx); err != nil {
				s.logger.Warn("Failed to purge expired sessions", zap.Error(err))
			} else if n > 0 {
				s.logger.Info("Purged expired sessions", zap.Int64("count", n))
			}
		}
		if counter, ok := store.(session.Counter); ok {
			if n, err := counter.Count(ctx); err == nil {
				metrics.Get().ActiveSessionsGauge.Record(ctx, n)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Close closes all server resources
func (s *Server) Close() {
	if s.stop != nil {
		s.stop()
	}
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
}
