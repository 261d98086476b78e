package repo

import (
	"errors"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cacheutil "mindtrade-api/internal/cache"
	"mindtrade-api/internal/model"
)

// Dependencies bundles the table models and shared infrastructure required by
// repository implementations.
type Dependencies struct {
	DBConn sqlx.SqlConn
	Cache  cache.Cache
	Redis  *redis.Redis
	TTL    cacheutil.TTLSet

	PositionsModel          model.PositionsModel
	TradesModel             model.TradesModel
	MindsetAssessmentsModel model.MindsetAssessmentsModel
	DisciplineChecksModel   model.DisciplineChecksModel
}

// Set exposes strongly typed repositories to application logic.
type Set struct {
	Positions   PositionsRepo
	History     HistoryRepo
	Discipline  DisciplineRepo
	Assessments AssessmentsRepo
	Prices      PricesRepo
}

// New constructs the repository set, validating required dependencies.
func New(deps Dependencies) (*Set, error) {
	if deps.DBConn == nil {
		return nil, errors.New("repo: missing DBConn dependency")
	}
	if deps.PositionsModel == nil || deps.TradesModel == nil ||
		deps.MindsetAssessmentsModel == nil || deps.DisciplineChecksModel == nil {
		return nil, errors.New("repo: missing table model dependency")
	}

	return &Set{
		Positions:   newPositionsRepo(deps),
		History:     newHistoryRepo(deps),
		Discipline:  newDisciplineRepo(deps),
		Assessments: newAssessmentsRepo(deps),
		Prices:      newPricesRepo(deps),
	}, nil
}
