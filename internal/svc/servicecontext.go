package svc

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cacheutil "mindtrade-api/internal/cache"
	"mindtrade-api/internal/config"
	"mindtrade-api/internal/model"
	"mindtrade-api/internal/repo"
	advisorpkg "mindtrade-api/pkg/advisor"
	assesspkg "mindtrade-api/pkg/assess"
	"mindtrade-api/pkg/journal"
	marketpkg "mindtrade-api/pkg/market"
	_ "mindtrade-api/pkg/market/binance"
	_ "mindtrade-api/pkg/market/static"
	mindsetpkg "mindtrade-api/pkg/mindset"
	tradepkg "mindtrade-api/pkg/trade"
)

type ServiceContext struct {
	Config config.Config

	Scorer *assesspkg.Scorer
	Engine *mindsetpkg.Engine

	MarketProviders map[string]marketpkg.Provider
	DefaultMarket   marketpkg.Provider

	Advisor advisorpkg.Advisor
	Journal *journal.Writer

	Flow *tradepkg.Flow

	// Storage is optional; the flow degrades to in-memory noops without it.
	DBConn sqlx.SqlConn
	Cache  cache.Cache
	Redis  *redis.Redis
	TTL    cacheutil.TTLSet
	Repos  *repo.Set
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		Scorer: assesspkg.NewScorer(c.Assess.Value),
		Engine: mindsetpkg.NewEngine(c.Mindset.Value),
		TTL:    cacheutil.NewTTLSet(c.TTL),
	}

	if c.Market.Value != nil {
		providers, err := c.Market.Value.BuildProviders()
		if err != nil {
			log.Fatalf("failed to build market providers: %v", err)
		}
		svc.MarketProviders = providers
		if c.Market.Value.Default != "" {
			svc.DefaultMarket = providers[c.Market.Value.Default]
		}
	}

	if c.Advisor.Value != nil {
		client, err := advisorpkg.NewClient(c.Advisor.Value)
		if err != nil {
			log.Fatalf("failed to init advisor client: %v", err)
		}
		svc.Advisor = client
	}

	if c.Journal.Dir != "" {
		svc.Journal = journal.NewWriter(c.Journal.Dir)
	}

	if c.Postgres.DSN != "" {
		svc.initStorage(c)
	}

	opts := []tradepkg.FlowOption{
		tradepkg.WithScorer(svc.Scorer),
		tradepkg.WithEngine(svc.Engine),
	}
	if svc.DefaultMarket != nil {
		opts = append(opts, tradepkg.WithMarketProvider(svc.DefaultMarket))
	}
	if svc.Repos != nil {
		opts = append(opts,
			tradepkg.WithPositionStore(svc.Repos.Positions),
			tradepkg.WithAssessmentStore(svc.Repos.Assessments),
			tradepkg.WithHistorySource(svc.Repos.History),
			tradepkg.WithDisciplineSource(svc.Repos.Discipline),
		)
	}
	svc.Flow = tradepkg.NewFlow(c.Trade.Value, opts...)

	return svc
}

func (svc *ServiceContext) initStorage(c config.Config) {
	if c.Redis.Host == "" {
		log.Fatalf("postgres storage requires a redis cache configuration")
	}

	conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
	cacheConf := cache.CacheConf{{RedisConf: c.Redis, Weight: 100}}

	svc.DBConn = conn
	svc.Cache = cache.New(cacheConf, syncx.NewSingleFlight(), cache.NewStat(cacheutil.Namespace), sqlx.ErrNotFound)
	svc.Redis = redis.MustNewRedis(c.Redis)

	repos, err := repo.New(repo.Dependencies{
		DBConn:                  conn,
		Cache:                   svc.Cache,
		Redis:                   svc.Redis,
		TTL:                     svc.TTL,
		PositionsModel:          model.NewPositionsModel(conn, cacheConf),
		TradesModel:             model.NewTradesModel(conn, cacheConf),
		MindsetAssessmentsModel: model.NewMindsetAssessmentsModel(conn, cacheConf),
		DisciplineChecksModel:   model.NewDisciplineChecksModel(conn, cacheConf),
	})
	if err != nil {
		log.Fatalf("failed to init repositories: %v", err)
	}
	svc.Repos = repos
}
