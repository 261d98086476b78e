package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cacheutil "mindtrade-api/internal/cache"
	"mindtrade-api/internal/model"
	"mindtrade-api/pkg/mindset"
	"mindtrade-api/pkg/trade"
)

var _ trade.AssessmentStore = (AssessmentsRepo)(nil)

// AssessmentsRepo keeps the scored trace of every submission attempt. The
// latest assessment per user is mirrored into Redis so dashboards can read it
// without touching Postgres.
type AssessmentsRepo interface {
	RecordAssessment(ctx context.Context, rec trade.AssessmentRecord) error
	Latest(ctx context.Context, userID string) (*LatestAssessment, error)
	RecordDecision(ctx context.Context, id int64, decision mindset.UserDecision) error
}

// LatestAssessment is the cached projection of the most recent assessment.
type LatestAssessment struct {
	ID             int64    `msgpack:"id"`
	UserID         string   `msgpack:"user_id"`
	Symbol         string   `msgpack:"symbol"`
	SetupScore     *int     `msgpack:"setup_score"`
	MindsetScore   int      `msgpack:"mindset_score"`
	Recommendation string   `msgpack:"recommendation"`
	Estimated      []string `msgpack:"estimated"`
	Accepted       bool     `msgpack:"accepted"`
	Reason         string   `msgpack:"reason"`
	Overridden     bool     `msgpack:"overridden"`
	CreatedAt      int64    `msgpack:"created_at"` // unix seconds
}

type assessmentsRepo struct {
	assessments model.MindsetAssessmentsModel
	redis       *redis.Redis
	ttl         cacheutil.TTLSet
}

func newAssessmentsRepo(deps Dependencies) AssessmentsRepo {
	return &assessmentsRepo{
		assessments: deps.MindsetAssessmentsModel,
		redis:       deps.Redis,
		ttl:         deps.TTL,
	}
}

func (r *assessmentsRepo) RecordAssessment(ctx context.Context, rec trade.AssessmentRecord) error {
	row := &model.MindsetAssessments{
		UserId:     rec.UserID,
		Symbol:     rec.Symbol,
		Accepted:   rec.Accepted,
		Overridden: rec.Overridden,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Reason != "" {
		row.Reason = sql.NullString{String: rec.Reason, Valid: true}
	}
	if rec.Setup != nil {
		row.SetupScore = sql.NullInt64{Int64: int64(rec.Setup.Score), Valid: true}
	}
	if rec.Mindset != nil {
		row.MindsetScore = int64(rec.Mindset.TotalScore)
		row.Recommendation = string(rec.Mindset.Recommendation)
		row.EmotionalScore = rec.Mindset.Breakdown.Emotional.Score
		row.HistoryScore = rec.Mindset.Breakdown.History.Score
		row.DisciplineScore = rec.Mindset.Breakdown.Discipline.Score
		if len(rec.Mindset.Estimated) > 0 {
			row.Estimated = sql.NullString{String: strings.Join(rec.Mindset.Estimated, ","), Valid: true}
		}
	}

	id, err := r.assessments.Insert(ctx, row)
	if err != nil {
		return fmt.Errorf("assessmentsRepo.RecordAssessment: %w", err)
	}

	r.cacheLatest(ctx, id, row)
	return nil
}

func (r *assessmentsRepo) Latest(ctx context.Context, userID string) (*LatestAssessment, error) {
	if cached := r.getCachedLatest(ctx, userID); cached != nil {
		return cached, nil
	}

	row, err := r.assessments.LatestByUser(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("assessmentsRepo.Latest: %w", err)
	}
	return latestFromRow(row.Id, row), nil
}

func (r *assessmentsRepo) RecordDecision(ctx context.Context, id int64, decision mindset.UserDecision) error {
	if err := r.assessments.RecordDecision(ctx, id, string(decision)); err != nil {
		return fmt.Errorf("assessmentsRepo.RecordDecision: %w", err)
	}
	return nil
}

func latestFromRow(id int64, row *model.MindsetAssessments) *LatestAssessment {
	latest := &LatestAssessment{
		ID:             id,
		UserID:         row.UserId,
		Symbol:         row.Symbol,
		MindsetScore:   int(row.MindsetScore),
		Recommendation: row.Recommendation,
		Accepted:       row.Accepted,
		Overridden:     row.Overridden,
		CreatedAt:      row.CreatedAt.Unix(),
	}
	if row.SetupScore.Valid {
		score := int(row.SetupScore.Int64)
		latest.SetupScore = &score
	}
	if row.Reason.Valid {
		latest.Reason = row.Reason.String
	}
	if row.Estimated.Valid && row.Estimated.String != "" {
		latest.Estimated = strings.Split(row.Estimated.String, ",")
	}
	return latest
}

func (r *assessmentsRepo) cacheLatest(ctx context.Context, id int64, row *model.MindsetAssessments) {
	if r.redis == nil {
		return
	}
	encoded, err := msgpack.Marshal(latestFromRow(id, row))
	if err != nil {
		logx.WithContext(ctx).Errorf("encode latest assessment for %s: %v", row.UserId, err)
		return
	}
	ttl := cacheutil.AssessmentLatestTTL(r.ttl)
	if ttl <= 0 {
		return
	}
	key := cacheutil.AssessmentLatestKey(row.UserId)
	if err := r.redis.SetexCtx(ctx, key, string(encoded), int(ttl/time.Second)); err != nil {
		logx.WithContext(ctx).Errorf("set latest assessment cache %s: %v", key, err)
	}
}

func (r *assessmentsRepo) getCachedLatest(ctx context.Context, userID string) *LatestAssessment {
	if r.redis == nil {
		return nil
	}
	key := cacheutil.AssessmentLatestKey(userID)
	raw, err := r.redis.GetCtx(ctx, key)
	if err != nil || raw == "" {
		return nil
	}
	var latest LatestAssessment
	if err := msgpack.Unmarshal([]byte(raw), &latest); err != nil {
		logx.WithContext(ctx).Errorf("decode latest assessment cache %s: %v", key, err)
		return nil
	}
	return &latest
}
