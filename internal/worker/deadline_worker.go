package worker

import (
	"context"
	"strconv"
	"time"

	"github.com/garudacbt/cbt-backend/internal/config"
	"github.com/garudacbt/cbt-backend/internal/repository"
	"github.com/garudacbt/cbt-backend/internal/service"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DeadlineWorker force-finishes sessions whose countdown reached zero.
// It scans the Redis deadline index once per second; finishing goes
// through the same idempotent path as an explicit confirmation, so a
// race with the participant's own finish is harmless.
type DeadlineWorker struct {
	flow        *service.ExamFlowService
	sessionRepo *repository.SessionRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewDeadlineWorker creates a new DeadlineWorker.
func NewDeadlineWorker(flow *service.ExamFlowService, sessionRepo *repository.SessionRepository, rdb *redis.Client, log zerolog.Logger) *DeadlineWorker {
	return &DeadlineWorker{
		flow:        flow,
		sessionRepo: sessionRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "deadline_worker").Logger(),
	}
}

// Start begins the scan loop. Call in a goroutine.
func (w *DeadlineWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	w.recover(ctx)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case now := <-ticker.C:
			w.scan(ctx, now)
		}
	}
}

// scan finishes every session whose deadline score is in the past.
func (w *DeadlineWorker) scan(ctx context.Context, now time.Time) {
	due, err := w.rdb.ZRangeByScore(ctx, config.CacheKey.SessionDeadlineIndex(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		w.log.Error().Err(err).Msg("Deadline scan failed")
		return
	}

	for _, member := range due {
		sessionID, err := uuid.Parse(member)
		if err != nil {
			w.rdb.ZRem(ctx, config.CacheKey.SessionDeadlineIndex(), member)
			continue
		}
		if _, err := w.flow.Finish(ctx, sessionID); err != nil {
			w.log.Error().Err(err).Str("session_id", member).Msg("Forced finish failed")
			continue
		}
		w.log.Info().Str("session_id", member).Msg("Session force-finished at deadline")
	}
}

// recover re-finishes sessions that expired while the server was down
// and therefore never left the IN_PROGRESS state.
func (w *DeadlineWorker) recover(ctx context.Context) {
	expired, err := w.sessionRepo.ListExpiredInProgress(ctx, time.Now())
	if err != nil {
		w.log.Error().Err(err).Msg("Expired session recovery failed")
		return
	}
	for i := range expired {
		if _, err := w.flow.Finish(ctx, expired[i].ID); err != nil {
			w.log.Error().Err(err).Str("session_id", expired[i].ID.String()).Msg("Recovery finish failed")
		}
	}
	if len(expired) > 0 {
		w.log.Info().Int("count", len(expired)).Msg("Recovered expired sessions")
	}
}
