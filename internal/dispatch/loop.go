package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hiehoo/tnetbot/internal/followup"
	"github.com/hiehoo/tnetbot/internal/funnel"
	"github.com/hiehoo/tnetbot/internal/gateway"
	"github.com/hiehoo/tnetbot/internal/track"
)

// Event is one inbound chat event handed to the engine.
type Event struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string

	// Kind is "start" for the entry command, "button" for a keyboard press.
	Kind string

	// Campaign is the deep-link parameter on start events.
	Campaign string

	// Selection is the callback data on button events.
	Selection string

	// MessageID is the message the pressed button was attached to; zero when
	// the platform no longer knows it.
	MessageID int64
}

const (
	EventStart  = "start"
	EventButton = "button"
)

// Loop consumes inbound events one at a time on a single goroutine, which
// serializes all funnel state transitions per process.
type Loop struct {
	tracker   *track.Tracker
	scheduler *followup.Scheduler
	gateway   gateway.Gateway
	events    chan Event
	rng       *rand.Rand
	logger    *slog.Logger
}

func NewLoop(tracker *track.Tracker, scheduler *followup.Scheduler, gw gateway.Gateway, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		tracker:   tracker,
		scheduler: scheduler,
		gateway:   gw,
		events:    make(chan Event, 64),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    logger,
	}
}

// Submit queues an event for processing. It blocks when the queue is full
// until there is room or ctx is done.
func (l *Loop) Submit(ctx context.Context, e Event) error {
	select {
	case l.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is cancelled. A failing event never stops
// the loop.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-l.events:
			l.handle(ctx, e)
		}
	}
}

func (l *Loop) handle(ctx context.Context, e Event) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event handler panicked", "user", e.UserID, "kind", e.Kind, "panic", r)
			l.apologize(ctx, e.UserID)
		}
	}()

	var err error
	switch e.Kind {
	case EventStart:
		err = l.handleStart(ctx, e)
	case EventButton:
		err = l.handleButton(ctx, e)
	default:
		l.logger.Warn("unknown event kind", "kind", e.Kind, "user", e.UserID)
		return
	}

	if err != nil {
		l.logger.Error("event failed", "user", e.UserID, "kind", e.Kind, "error", err)
		l.recordError(e, err)
		l.apologize(ctx, e.UserID)
	}
}

func (l *Loop) handleStart(ctx context.Context, e Event) error {
	err := l.tracker.Record(track.Event{
		UserID: e.UserID, Username: e.Username, FirstName: e.FirstName, LastName: e.LastName,
		Campaign: e.Campaign,
		Kind:     funnel.KindStartCommand,
		Data:     map[string]string{"campaign": e.Campaign},
	})
	if err != nil {
		return err
	}

	node := funnel.WelcomeFor(e.Campaign)
	if _, err := l.gateway.Send(ctx, node.Message(e.UserID)); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}
	return nil
}

func (l *Loop) handleButton(ctx context.Context, e Event) error {
	r := funnel.Route(e.Selection, e.UserID)
	if r.Unknown {
		l.logger.Warn("unrecognized selection", "user", e.UserID, "selection", e.Selection)
	}

	data := map[string]string{"selection": e.Selection}
	if r.ConfirmPlan != "" {
		data["plan"] = r.ConfirmPlan
	}
	if r.Response != "" {
		data["response"] = r.Response
	}

	// The payment_confirmation record also writes the purchase and cancels
	// pending follow-ups in one storage transaction.
	err := l.tracker.Record(track.Event{
		UserID: e.UserID, Username: e.Username, FirstName: e.FirstName, LastName: e.LastName,
		Kind: r.Kind,
		Data: data,
	})
	if err != nil {
		return err
	}

	if r.ViewService != "" {
		err := l.tracker.Record(track.Event{
			UserID: e.UserID, Username: e.Username, FirstName: e.FirstName, LastName: e.LastName,
			Kind: funnel.KindServiceView,
			Data: map[string]string{"service": r.ViewService},
		})
		if err != nil {
			return err
		}
	}

	if r.Response != "" {
		if err := l.scheduler.Respond(e.UserID, r.ResponseService, r.Response); err != nil {
			return err
		}
	}

	node := r.Node
	if funnel.ShouldAttachSocialProof(l.rng, node) {
		node = funnel.WithSocialProof(l.rng, node)
	}
	if err := l.deliver(ctx, e, r.DeleteOriginal, node); err != nil {
		return err
	}

	if r.FollowUpService != "" {
		if err := l.scheduler.Schedule(e.UserID, r.FollowUpService); err != nil {
			return err
		}
	}

	return nil
}

// deliver shows the next screen. With a known original message it edits in
// place, falling back to one fresh send when the edit fails (the original may
// be too old to touch). Navigation replaces the message wholesale: delete
// then send.
func (l *Loop) deliver(ctx context.Context, e Event, replace bool, node funnel.Node) error {
	msg := node.Message(e.UserID)

	if e.MessageID != 0 && !replace {
		err := l.gateway.Edit(ctx, e.UserID, e.MessageID, msg)
		if err == nil {
			return nil
		}
		if errors.Is(err, gateway.ErrStale) {
			l.logger.Warn("original message gone, sending fresh", "user", e.UserID, "message", e.MessageID)
		} else {
			l.logger.Warn("edit failed, sending fresh", "user", e.UserID, "message", e.MessageID, "error", err)
		}
	}

	if e.MessageID != 0 && replace {
		if err := l.gateway.Delete(ctx, e.UserID, e.MessageID); err != nil && !errors.Is(err, gateway.ErrStale) {
			l.logger.Warn("could not delete navigated message", "user", e.UserID, "message", e.MessageID, "error", err)
		}
	}

	if _, err := l.gateway.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending %s: %w", node.ID, err)
	}
	return nil
}

func (l *Loop) recordError(e Event, cause error) {
	err := l.tracker.Record(track.Event{
		UserID: e.UserID, Username: e.Username, FirstName: e.FirstName, LastName: e.LastName,
		Kind: funnel.KindError,
		Data: map[string]string{"error_message": cause.Error()},
	})
	if err != nil {
		l.logger.Error("could not record error interaction", "user", e.UserID, "error", err)
	}
}

func (l *Loop) apologize(ctx context.Context, userID int64) {
	if _, err := l.gateway.Send(ctx, funnel.Apology().Message(userID)); err != nil {
		l.logger.Error("could not deliver apology", "user", userID, "error", err)
	}
}
