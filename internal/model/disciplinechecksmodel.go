package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ DisciplineChecksModel = (*customDisciplineChecksModel)(nil)

var (
	disciplineChecksFieldNames = []string{
		"id", "user_id", "day",
		"affirmation_done", "habit_done", "goal_done", "action_done",
		"combo_count", "updated_at",
	}
	disciplineChecksRows = strings.Join(disciplineChecksFieldNames, ", ")
)

// DisciplineChecks mirrors a row in the discipline_checks table. One row per
// user per day records which daily ritual categories were completed.
type DisciplineChecks struct {
	Id              int64     `db:"id"`
	UserId          string    `db:"user_id"`
	Day             string    `db:"day"` // YYYY-MM-DD
	AffirmationDone bool      `db:"affirmation_done"`
	HabitDone       bool      `db:"habit_done"`
	GoalDone        bool      `db:"goal_done"`
	ActionDone      bool      `db:"action_done"`
	ComboCount      int64     `db:"combo_count"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type (
	// DisciplineChecksModel reads and upserts daily ritual completion.
	DisciplineChecksModel interface {
		FindByUserDay(ctx context.Context, userID, day string) (*DisciplineChecks, error)
		Upsert(ctx context.Context, data *DisciplineChecks) error
	}

	customDisciplineChecksModel struct {
		*defaultDisciplineChecksModel
	}

	defaultDisciplineChecksModel struct {
		sqlc.CachedConn
		table string
	}
)

// NewDisciplineChecksModel returns a model for the discipline_checks table.
func NewDisciplineChecksModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) DisciplineChecksModel {
	return &customDisciplineChecksModel{
		defaultDisciplineChecksModel: &defaultDisciplineChecksModel{
			CachedConn: sqlc.NewConn(conn, c, opts...),
			table:      "public.discipline_checks",
		},
	}
}

func (m *defaultDisciplineChecksModel) FindByUserDay(ctx context.Context, userID, day string) (*DisciplineChecks, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE user_id = $1 AND day = $2 LIMIT 1", disciplineChecksRows, m.table)
	var resp DisciplineChecks
	err := m.QueryRowNoCacheCtx(ctx, &resp, query, userID, day)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultDisciplineChecksModel) Upsert(ctx context.Context, data *DisciplineChecks) error {
	query := fmt.Sprintf(`INSERT INTO %s
(user_id, day, affirmation_done, habit_done, goal_done, action_done, combo_count, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id, day) DO UPDATE SET
    affirmation_done = EXCLUDED.affirmation_done,
    habit_done = EXCLUDED.habit_done,
    goal_done = EXCLUDED.goal_done,
    action_done = EXCLUDED.action_done,
    combo_count = EXCLUDED.combo_count,
    updated_at = EXCLUDED.updated_at`, m.table)

	_, err := m.ExecNoCacheCtx(ctx, query,
		data.UserId, data.Day,
		data.AffirmationDone, data.HabitDone, data.GoalDone, data.ActionDone,
		data.ComboCount, data.UpdatedAt)
	if err != nil {
		return fmt.Errorf("discipline_checks.Upsert: %w", err)
	}
	return nil
}
