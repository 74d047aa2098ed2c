package followup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hiehoo/tnetbot/internal/gateway"
	"github.com/hiehoo/tnetbot/internal/storage"
)

// TaskStore abstracts the follow-up queue operations the worker needs.
type TaskStore interface {
	ClaimDueFollowUp(now time.Time) (*storage.FollowUp, error)
	MarkFollowUp(id, status string) error
	HasPurchased(userID int64) (bool, error)
}

// Worker delivers due follow-ups from the persisted queue.
type Worker struct {
	store   TaskStore
	gateway gateway.Gateway
	poll    time.Duration
	logger  *slog.Logger
}

// NewWorker creates a Worker. If pollInterval is <= 0, it defaults to 30s.
func NewWorker(store TaskStore, gw gateway.Gateway, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &Worker{
		store:   store,
		gateway: gw,
		poll:    pollInterval,
		logger:  slog.Default(),
	}
}

// Run polls for due follow-ups until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		done, err := w.RunOnce(ctx)
		if err != nil {
			w.logger.Error("follow-up iteration failed", "error", err)
		}
		if done {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.poll):
		}
	}
}

// RunOnce claims and fires a single due follow-up.
// Returns true if a task was claimed (regardless of outcome).
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	task, err := w.store.ClaimDueFollowUp(time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("claiming follow-up: %w", err)
	}
	if task == nil {
		return false, nil
	}

	status := w.fire(ctx, task)
	if err := w.store.MarkFollowUp(task.ID, status); err != nil {
		return true, fmt.Errorf("marking follow-up %s %s: %w", task.ID, status, err)
	}
	return true, nil
}

// fire delivers one claimed follow-up and returns its terminal status. The
// purchase check runs here, at fire time, not at claim time: a purchase made
// while the task sat in the queue must suppress the message.
func (w *Worker) fire(ctx context.Context, task *storage.FollowUp) string {
	purchased, err := w.store.HasPurchased(task.UserID)
	if err != nil {
		w.logger.Error("purchase check failed", "user", task.UserID, "error", err)
		return storage.FollowUpFailed
	}
	if purchased {
		w.logger.Info("follow-up skipped, user purchased", "user", task.UserID, "service", task.Service)
		return storage.FollowUpSkipped
	}

	msg := reEngagementMessage(task.UserID, task.Service)
	if _, err := w.gateway.Send(ctx, msg); err != nil {
		if errors.Is(err, gateway.ErrStale) {
			w.logger.Warn("follow-up target gone", "user", task.UserID, "service", task.Service)
		} else {
			w.logger.Error("follow-up delivery failed", "user", task.UserID, "service", task.Service, "error", err)
		}
		return storage.FollowUpFailed
	}

	w.logger.Info("follow-up sent", "user", task.UserID, "service", task.Service)
	return storage.FollowUpSent
}
