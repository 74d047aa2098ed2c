package track

import (
	"testing"
	"time"

	"github.com/hiehoo/tnetbot/internal/funnel"
	"github.com/hiehoo/tnetbot/internal/storage"
)

func newTestTracker(t *testing.T) (*Tracker, *storage.Store) {
	t.Helper()
	s, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewTracker(s, nil), s
}

func TestRecord_StartCommand(t *testing.T) {
	tr, s := newTestTracker(t)

	err := tr.Record(Event{
		UserID: 1, Username: "trader", FirstName: "A", LastName: "B",
		Campaign: funnel.CampaignEA,
		Kind:     funnel.KindStartCommand,
		Data:     map[string]string{"campaign": funnel.CampaignEA},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	u, err := s.GetUser(1)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Campaign != funnel.CampaignEA {
		t.Errorf("Campaign = %q", u.Campaign)
	}
}

func TestRecord_ServiceViewUpdatesProjection(t *testing.T) {
	tr, s := newTestTracker(t)

	for i := 0; i < 2; i++ {
		err := tr.Record(Event{
			UserID: 1, Username: "trader",
			Kind: funnel.KindServiceView,
			Data: map[string]string{"service": funnel.ServiceVIP},
		})
		if err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	view, err := s.GetServiceView(1, funnel.ServiceVIP)
	if err != nil {
		t.Fatalf("GetServiceView: %v", err)
	}
	if view.ViewCount != 2 {
		t.Errorf("ViewCount = %d, want 2", view.ViewCount)
	}

	viewed, err := tr.HasViewed(1, funnel.ServiceVIP)
	if err != nil {
		t.Fatalf("HasViewed: %v", err)
	}
	if !viewed {
		t.Error("HasViewed = false after two views")
	}

	e, err := tr.Engagement(1)
	if err != nil {
		t.Fatalf("Engagement: %v", err)
	}
	// Set semantics: two views of one service, one entry.
	if len(e.ServicesViewed) != 1 {
		t.Errorf("ServicesViewed = %v", e.ServicesViewed)
	}
}

func TestRecord_PaymentConfirmationKnownPlan(t *testing.T) {
	tr, s := newTestTracker(t)

	if err := tr.Record(Event{UserID: 1, Username: "t", Kind: funnel.KindStartCommand}); err != nil {
		t.Fatalf("Record start: %v", err)
	}
	if _, err := s.ScheduleFollowUp(storage.FollowUp{
		ID: "f-1", UserID: 1, Service: funnel.ServiceEA,
		ScheduledAt: time.Now().UTC().Add(time.Hour),
	}); err != nil {
		t.Fatalf("ScheduleFollowUp: %v", err)
	}

	err := tr.Record(Event{
		UserID: 1, Username: "t",
		Kind: funnel.KindPaymentConfirmed,
		Data: map[string]string{"plan": "vip_lifetime"},
	})
	if err != nil {
		t.Fatalf("Record payment: %v", err)
	}

	purchases, err := s.ListPurchases(1)
	if err != nil {
		t.Fatalf("ListPurchases: %v", err)
	}
	if len(purchases) != 1 || purchases[0].Price != "$2000" {
		t.Errorf("purchases = %+v", purchases)
	}

	// Confirmation cancels the pending follow-up in the same step.
	followups, err := s.ListFollowUps(1)
	if err != nil {
		t.Fatalf("ListFollowUps: %v", err)
	}
	if followups[0].Status != storage.FollowUpCanceled {
		t.Errorf("follow-up status = %q", followups[0].Status)
	}

	e, err := tr.Engagement(1)
	if err != nil {
		t.Fatalf("Engagement: %v", err)
	}
	if !e.Purchased {
		t.Error("projection not marked purchased")
	}
}

func TestRecord_PaymentConfirmationUnknownPlan(t *testing.T) {
	tr, s := newTestTracker(t)

	err := tr.Record(Event{
		UserID: 1, Username: "t",
		Kind: funnel.KindPaymentConfirmed,
		Data: map[string]string{"plan": "mystery_plan"},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	purchases, err := s.ListPurchases(1)
	if err != nil {
		t.Fatalf("ListPurchases: %v", err)
	}
	if len(purchases) != 1 {
		t.Fatalf("got %d purchases, want 1 (unknown plan still recorded)", len(purchases))
	}
	if purchases[0].Price != funnel.UnknownPrice {
		t.Errorf("Price = %q, want %q", purchases[0].Price, funnel.UnknownPrice)
	}
}

func TestEngagement_RebuildsFromStorage(t *testing.T) {
	tr, s := newTestTracker(t)

	// Write through one tracker, read through a fresh one over the same
	// store to force a projection rebuild.
	if err := tr.Record(Event{
		UserID: 1, Username: "t",
		Kind: funnel.KindServiceView,
		Data: map[string]string{"service": funnel.ServiceCopytrade},
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := tr.Record(Event{
		UserID: 1, Username: "t",
		Kind: funnel.KindPaymentConfirmed,
		Data: map[string]string{"plan": "copytrade"},
	}); err != nil {
		t.Fatalf("Record payment: %v", err)
	}

	fresh := NewTracker(s, nil)
	e, err := fresh.Engagement(1)
	if err != nil {
		t.Fatalf("Engagement: %v", err)
	}
	if !e.Purchased {
		t.Error("rebuilt projection missing purchase")
	}
	if len(e.ServicesViewed) != 1 || e.ServicesViewed[0] != funnel.ServiceCopytrade {
		t.Errorf("rebuilt ServicesViewed = %v", e.ServicesViewed)
	}
}

func TestEngagement_UnknownUser(t *testing.T) {
	tr, _ := newTestTracker(t)

	e, err := tr.Engagement(404)
	if err != nil {
		t.Fatalf("Engagement: %v", err)
	}
	if e.Purchased || len(e.ServicesViewed) != 0 {
		t.Errorf("unknown user projection = %+v", e)
	}
}
