package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cacheutil "mindtrade-api/internal/cache"
	"mindtrade-api/internal/model"
	"mindtrade-api/pkg/mindset"
	"mindtrade-api/pkg/trade"
)

const dayLayout = "2006-01-02"

var _ trade.DisciplineSource = (DisciplineRepo)(nil)

// DisciplineRepo tracks daily ritual completion. A day with no row reports a
// nil snapshot, which the mindset engine scores as an estimate.
type DisciplineRepo interface {
	DisciplineSnapshot(ctx context.Context, userID string) (*mindset.DisciplineSnapshot, error)
	RecordToday(ctx context.Context, userID string, snapshot mindset.DisciplineSnapshot) error
}

type disciplineRepo struct {
	checks model.DisciplineChecksModel
	redis  *redis.Redis
	ttl    cacheutil.TTLSet
	nowFn  func() time.Time
}

func newDisciplineRepo(deps Dependencies) DisciplineRepo {
	return &disciplineRepo{
		checks: deps.DisciplineChecksModel,
		redis:  deps.Redis,
		ttl:    deps.TTL,
		nowFn:  time.Now,
	}
}

// disciplinePayload is the msgpack wire form of a cached snapshot.
type disciplinePayload struct {
	Affirmation bool `msgpack:"affirmation"`
	Habit       bool `msgpack:"habit"`
	Goal        bool `msgpack:"goal"`
	Action      bool `msgpack:"action"`
	ComboCount  int  `msgpack:"combo"`
}

func (r *disciplineRepo) DisciplineSnapshot(ctx context.Context, userID string) (*mindset.DisciplineSnapshot, error) {
	day := r.nowFn().UTC().Format(dayLayout)
	key := cacheutil.DisciplineDayKey(userID, day)
	if cached := r.getCached(ctx, key); cached != nil {
		return cached, nil
	}

	row, err := r.checks.FindByUserDay(ctx, userID, day)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("disciplineRepo.DisciplineSnapshot: %w", err)
	}

	snapshot := &mindset.DisciplineSnapshot{
		AffirmationDone: row.AffirmationDone,
		HabitDone:       row.HabitDone,
		GoalDone:        row.GoalDone,
		ActionDone:      row.ActionDone,
		ComboCount:      int(row.ComboCount),
	}
	r.setCached(ctx, key, snapshot)
	return snapshot, nil
}

func (r *disciplineRepo) RecordToday(ctx context.Context, userID string, snapshot mindset.DisciplineSnapshot) error {
	now := r.nowFn().UTC()
	day := now.Format(dayLayout)
	row := &model.DisciplineChecks{
		UserId:          userID,
		Day:             day,
		AffirmationDone: snapshot.AffirmationDone,
		HabitDone:       snapshot.HabitDone,
		GoalDone:        snapshot.GoalDone,
		ActionDone:      snapshot.ActionDone,
		ComboCount:      int64(snapshot.ComboCount),
		UpdatedAt:       now,
	}
	if err := r.checks.Upsert(ctx, row); err != nil {
		return fmt.Errorf("disciplineRepo.RecordToday: %w", err)
	}
	r.setCached(ctx, cacheutil.DisciplineDayKey(userID, day), &snapshot)
	return nil
}

func (r *disciplineRepo) getCached(ctx context.Context, key string) *mindset.DisciplineSnapshot {
	if r.redis == nil {
		return nil
	}
	raw, err := r.redis.GetCtx(ctx, key)
	if err != nil || raw == "" {
		return nil
	}
	var payload disciplinePayload
	if err := msgpack.Unmarshal([]byte(raw), &payload); err != nil {
		logx.WithContext(ctx).Errorf("decode discipline cache %s: %v", key, err)
		return nil
	}
	return &mindset.DisciplineSnapshot{
		AffirmationDone: payload.Affirmation,
		HabitDone:       payload.Habit,
		GoalDone:        payload.Goal,
		ActionDone:      payload.Action,
		ComboCount:      payload.ComboCount,
	}
}

func (r *disciplineRepo) setCached(ctx context.Context, key string, snapshot *mindset.DisciplineSnapshot) {
	if r.redis == nil {
		return
	}
	encoded, err := msgpack.Marshal(disciplinePayload{
		Affirmation: snapshot.AffirmationDone,
		Habit:       snapshot.HabitDone,
		Goal:        snapshot.GoalDone,
		Action:      snapshot.ActionDone,
		ComboCount:  snapshot.ComboCount,
	})
	if err != nil {
		logx.WithContext(ctx).Errorf("encode discipline cache %s: %v", key, err)
		return
	}
	ttl := cacheutil.DisciplineTTL(r.ttl)
	if ttl <= 0 {
		return
	}
	if err := r.redis.SetexCtx(ctx, key, string(encoded), int(ttl/time.Second)); err != nil {
		logx.WithContext(ctx).Errorf("set discipline cache %s: %v", key, err)
	}
}
