package commands

import (
	"fmt"

	"github.com/minglun/v32/backend/internal/external/yahoo"
	"github.com/minglun/v32/backend/internal/holdings"
	"github.com/minglun/v32/backend/internal/market"
	"github.com/minglun/v32/backend/internal/scan"
	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/database"
	"github.com/minglun/v32/backend/pkg/httputil"
	"github.com/minglun/v32/backend/pkg/logger"
	"github.com/minglun/v32/backend/pkg/redis"
)

// deps bundles the wiring shared by every command
type deps struct {
	cfg           *config.Config
	log           *logger.Logger
	db            *database.DB
	cache         *redis.Cache
	scanner       *scan.Scanner
	scanRepo      *scan.Repository
	marketService *market.Service
	holdingsRepo  *holdings.Repository
	evaluator     *holdings.Evaluator

	redisClient *redis.Client
}

// initDeps loads config and wires the full pipeline
func initDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "warroom")

	httpClient := httputil.New(log)
	marketData := yahoo.NewClient(cfg, httpClient, log)

	scanner := scan.NewScanner(cfg, marketData, cache, log)
	scanRepo := scan.NewRepository(db.Pool)
	marketService := market.NewService(cfg, marketData, cache, log)
	holdingsRepo := holdings.NewRepository(db.Pool)
	evaluator := holdings.NewEvaluator(holdingsRepo, scanner, log)

	return &deps{
		cfg:           cfg,
		log:           log,
		db:            db,
		cache:         cache,
		scanner:       scanner,
		scanRepo:      scanRepo,
		marketService: marketService,
		holdingsRepo:  holdingsRepo,
		evaluator:     evaluator,
		redisClient:   redisClient,
	}, nil
}

// close releases database and redis connections
func (d *deps) close() {
	if d.redisClient != nil {
		_ = d.redisClient.Close()
	}
	if d.db != nil {
		d.db.Close()
	}
}
