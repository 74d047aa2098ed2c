package track

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hiehoo/tnetbot/internal/funnel"
	"github.com/hiehoo/tnetbot/internal/storage"
)

// Event is one observed user action, ready to be recorded.
type Event struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string

	// Campaign is only meaningful on start_command events; it is fixed at
	// the user's first contact and ignored afterwards.
	Campaign string

	Kind string
	Data map[string]string
}

// Engagement is the in-memory view of one user's funnel state.
type Engagement struct {
	ServicesViewed  []string
	LastInteraction time.Time
	Purchased       bool
}

// Tracker records interactions and maintains a per-user engagement
// projection. The projection is a cache over storage: on a miss it is
// rebuilt from the tables, so restarts lose nothing.
type Tracker struct {
	store  *storage.Store
	logger *slog.Logger

	mu   sync.Mutex
	proj map[int64]*Engagement
}

func NewTracker(store *storage.Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:  store,
		logger: logger,
		proj:   make(map[int64]*Engagement),
	}
}

// Record persists the event: user upsert, interaction append, and the
// kind-specific side effects (view counters, purchase confirmation).
func (t *Tracker) Record(e Event) error {
	if err := t.store.UpsertUser(e.UserID, e.Username, e.FirstName, e.LastName, e.Campaign); err != nil {
		return fmt.Errorf("upserting user %d: %w", e.UserID, err)
	}

	payload := "{}"
	if len(e.Data) > 0 {
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return fmt.Errorf("encoding interaction payload: %w", err)
		}
		payload = string(raw)
	}

	now := time.Now().UTC()
	if err := t.store.AppendInteraction(storage.Interaction{
		ID:          uuid.NewString(),
		UserID:      e.UserID,
		Kind:        e.Kind,
		PayloadJSON: payload,
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("recording %s interaction: %w", e.Kind, err)
	}

	switch e.Kind {
	case funnel.KindServiceView:
		service := e.Data["service"]
		if service == "" {
			break
		}
		if err := t.store.BumpServiceView(e.UserID, service); err != nil {
			return fmt.Errorf("bumping %s view: %w", service, err)
		}
		t.projectView(e.UserID, service, now)

	case funnel.KindPaymentConfirmed:
		plan := e.Data["plan"]
		if plan == "" {
			break
		}
		price := funnel.PriceFor(plan)
		canceled, err := t.store.ConfirmPurchase(storage.Purchase{
			ID:          uuid.NewString(),
			UserID:      e.UserID,
			PlanCode:    plan,
			Price:       price,
			PurchasedAt: now,
		}, funnel.ResponsePurchased)
		if err != nil {
			return fmt.Errorf("confirming %s purchase: %w", plan, err)
		}
		t.logger.Info("purchase confirmed",
			"user", e.UserID, "plan", plan, "price", price, "followups_canceled", canceled)
		t.projectPurchase(e.UserID, now)

	default:
		t.touch(e.UserID, now)
	}

	return nil
}

// Engagement returns (and if necessary rebuilds) the user's projection.
func (t *Tracker) Engagement(userID int64) (Engagement, error) {
	t.mu.Lock()
	if p, ok := t.proj[userID]; ok {
		snapshot := *p
		snapshot.ServicesViewed = append([]string(nil), p.ServicesViewed...)
		t.mu.Unlock()
		return snapshot, nil
	}
	t.mu.Unlock()

	p, err := t.rebuild(userID)
	if err != nil {
		return Engagement{}, err
	}

	t.mu.Lock()
	t.proj[userID] = p
	snapshot := *p
	snapshot.ServicesViewed = append([]string(nil), p.ServicesViewed...)
	t.mu.Unlock()
	return snapshot, nil
}

// HasViewed reports whether the user has been shown the service.
func (t *Tracker) HasViewed(userID int64, service string) (bool, error) {
	e, err := t.Engagement(userID)
	if err != nil {
		return false, err
	}
	for _, s := range e.ServicesViewed {
		if s == service {
			return true, nil
		}
	}
	return false, nil
}

func (t *Tracker) rebuild(userID int64) (*Engagement, error) {
	p := &Engagement{}

	u, err := t.store.GetUser(userID)
	if err == nil {
		p.Purchased = u.Purchased
		p.LastInteraction = u.LastInteraction
	} else if err != storage.ErrNotFound {
		return nil, fmt.Errorf("rebuilding projection for %d: %w", userID, err)
	}

	services, err := t.store.ServicesViewed(userID)
	if err != nil {
		return nil, fmt.Errorf("rebuilding viewed services for %d: %w", userID, err)
	}
	p.ServicesViewed = services

	return p, nil
}

func (t *Tracker) projectView(userID int64, service string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.proj[userID]
	if !ok {
		return
	}
	p.LastInteraction = now
	for _, s := range p.ServicesViewed {
		if s == service {
			return
		}
	}
	p.ServicesViewed = append(p.ServicesViewed, service)
}

func (t *Tracker) projectPurchase(userID int64, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.proj[userID]; ok {
		p.Purchased = true
		p.LastInteraction = now
	}
}

func (t *Tracker) touch(userID int64, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.proj[userID]; ok {
		p.LastInteraction = now
	}
}
