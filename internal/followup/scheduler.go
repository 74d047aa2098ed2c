package followup

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hiehoo/tnetbot/internal/storage"
)

// Scheduler creates and cancels persisted follow-up tasks. The delay between
// a service view and its follow-up is fixed at construction (24h in
// production, short in tests).
type Scheduler struct {
	store  *storage.Store
	delay  time.Duration
	logger *slog.Logger
}

func NewScheduler(store *storage.Store, delay time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{store: store, delay: delay, logger: logger}
}

// Schedule queues a follow-up for the user and service. Purchased users are
// never scheduled; repeat calls for the same (user, service) reuse the
// pending row.
func (s *Scheduler) Schedule(userID int64, service string) error {
	purchased, err := s.store.HasPurchased(userID)
	if err != nil {
		return fmt.Errorf("checking purchase state for %d: %w", userID, err)
	}
	if purchased {
		return nil
	}

	at := time.Now().UTC().Add(s.delay)
	id, err := s.store.ScheduleFollowUp(storage.FollowUp{
		ID:          uuid.NewString(),
		UserID:      userID,
		Service:     service,
		ScheduledAt: at,
	})
	if err != nil {
		return fmt.Errorf("scheduling %s follow-up for %d: %w", service, userID, err)
	}

	s.logger.Info("follow-up scheduled", "user", userID, "service", service, "id", id, "at", at)
	return nil
}

// Respond records the user's reply to a sent follow-up. Replies carrying a
// service tag hit that service's row; service-less replies hit the most
// recently sent one. A reply with no matching sent row is dropped (stale
// keyboards resend response buttons long after the rows are closed).
func (s *Scheduler) Respond(userID int64, service, response string) error {
	var err error
	if service != "" {
		err = s.store.RespondFollowUp(userID, service, response)
	} else {
		err = s.store.RespondLatestFollowUp(userID, response)
	}
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("follow-up response with no open follow-up", "user", userID, "service", service, "response", response)
		return nil
	}
	if err != nil {
		return fmt.Errorf("recording follow-up response for %d: %w", userID, err)
	}
	return nil
}

// CancelAll cancels every pending follow-up for the user. Safe to call when
// none are scheduled.
func (s *Scheduler) CancelAll(userID int64, response string) error {
	n, err := s.store.CancelFollowUps(userID, response)
	if err != nil {
		return fmt.Errorf("canceling follow-ups for %d: %w", userID, err)
	}
	if n > 0 {
		s.logger.Info("follow-ups canceled", "user", userID, "count", n)
	}
	return nil
}
