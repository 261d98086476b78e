package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ MindsetAssessmentsModel = (*customMindsetAssessmentsModel)(nil)

var (
	mindsetAssessmentsFieldNames = []string{
		"id", "user_id", "symbol",
		"setup_score", "mindset_score", "recommendation",
		"emotional_score", "history_score", "discipline_score",
		"estimated", "accepted", "reason", "decision", "overridden",
		"created_at",
	}
	mindsetAssessmentsRows = strings.Join(mindsetAssessmentsFieldNames, ", ")
)

// MindsetAssessments mirrors a row in the mindset_assessments table. Each row
// traces one scored submission, opened or not. Estimated holds a comma-joined
// list of the sub-scores that fell back to neutral defaults.
type MindsetAssessments struct {
	Id              int64          `db:"id"`
	UserId          string         `db:"user_id"`
	Symbol          string         `db:"symbol"`
	SetupScore      sql.NullInt64  `db:"setup_score"`
	MindsetScore    int64          `db:"mindset_score"`
	Recommendation  string         `db:"recommendation"`
	EmotionalScore  float64        `db:"emotional_score"`
	HistoryScore    float64        `db:"history_score"`
	DisciplineScore float64        `db:"discipline_score"`
	Estimated       sql.NullString `db:"estimated"`
	Accepted        bool           `db:"accepted"`
	Reason          sql.NullString `db:"reason"`
	Decision        sql.NullString `db:"decision"`
	Overridden      bool           `db:"overridden"`
	CreatedAt       time.Time      `db:"created_at"`
}

type (
	// MindsetAssessmentsModel stores and retrieves scored assessments.
	MindsetAssessmentsModel interface {
		Insert(ctx context.Context, data *MindsetAssessments) (int64, error)
		FindOne(ctx context.Context, id int64) (*MindsetAssessments, error)
		LatestByUser(ctx context.Context, userID string) (*MindsetAssessments, error)
		RecordDecision(ctx context.Context, id int64, decision string) error
	}

	customMindsetAssessmentsModel struct {
		*defaultMindsetAssessmentsModel
	}

	defaultMindsetAssessmentsModel struct {
		sqlc.CachedConn
		table string
	}
)

// NewMindsetAssessmentsModel returns a model for the mindset_assessments table.
func NewMindsetAssessmentsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) MindsetAssessmentsModel {
	return &customMindsetAssessmentsModel{
		defaultMindsetAssessmentsModel: &defaultMindsetAssessmentsModel{
			CachedConn: sqlc.NewConn(conn, c, opts...),
			table:      "public.mindset_assessments",
		},
	}
}

func (m *defaultMindsetAssessmentsModel) Insert(ctx context.Context, data *MindsetAssessments) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s
(user_id, symbol, setup_score, mindset_score, recommendation,
 emotional_score, history_score, discipline_score,
 estimated, accepted, reason, decision, overridden, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`, m.table)

	var id int64
	err := m.QueryRowNoCacheCtx(ctx, &id, query,
		data.UserId, data.Symbol, data.SetupScore, data.MindsetScore, data.Recommendation,
		data.EmotionalScore, data.HistoryScore, data.DisciplineScore,
		data.Estimated, data.Accepted, data.Reason, data.Decision, data.Overridden, data.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("mindset_assessments.Insert: %w", err)
	}
	return id, nil
}

func (m *defaultMindsetAssessmentsModel) FindOne(ctx context.Context, id int64) (*MindsetAssessments, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 LIMIT 1", mindsetAssessmentsRows, m.table)
	var resp MindsetAssessments
	err := m.QueryRowNoCacheCtx(ctx, &resp, query, id)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultMindsetAssessmentsModel) LatestByUser(ctx context.Context, userID string) (*MindsetAssessments, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`, mindsetAssessmentsRows, m.table)

	var resp MindsetAssessments
	err := m.QueryRowNoCacheCtx(ctx, &resp, query, userID)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

// RecordDecision sets the user's final decision on an assessment. It refuses
// to overwrite a decision that is already present.
func (m *defaultMindsetAssessmentsModel) RecordDecision(ctx context.Context, id int64, decision string) error {
	query := fmt.Sprintf("UPDATE %s SET decision = $1 WHERE id = $2 AND decision IS NULL", m.table)
	result, err := m.ExecNoCacheCtx(ctx, query, decision, id)
	if err != nil {
		return fmt.Errorf("mindset_assessments.RecordDecision: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mindset_assessments.RecordDecision rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mindset_assessments.RecordDecision: assessment %d missing or already decided", id)
	}
	return nil
}
