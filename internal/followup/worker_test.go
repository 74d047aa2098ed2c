package followup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hiehoo/tnetbot/internal/funnel"
	"github.com/hiehoo/tnetbot/internal/gateway"
	"github.com/hiehoo/tnetbot/internal/storage"
)

// fakeGateway records sends and can be told to fail.
type fakeGateway struct {
	sent    []gateway.Message
	sendErr error
}

func (f *fakeGateway) Send(ctx context.Context, m gateway.Message) (gateway.Sent, error) {
	if f.sendErr != nil {
		return gateway.Sent{}, f.sendErr
	}
	f.sent = append(f.sent, m)
	return gateway.Sent{MessageID: int64(len(f.sent))}, nil
}

func (f *fakeGateway) Edit(ctx context.Context, chatID, messageID int64, m gateway.Message) error {
	return nil
}

func (f *fakeGateway) Delete(ctx context.Context, chatID, messageID int64) error {
	return nil
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addUser(t *testing.T, s *storage.Store, id int64) {
	t.Helper()
	if err := s.UpsertUser(id, "u", "", "", ""); err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}
}

func TestSchedule_SkipsPurchasedUser(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, 1)
	if err := s.RecordPurchase(storage.Purchase{
		ID: "p-1", UserID: 1, PlanCode: "copytrade", Price: "$500", PurchasedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("RecordPurchase: %v", err)
	}

	sched := NewScheduler(s, time.Hour, nil)
	if err := sched.Schedule(1, funnel.ServiceEA); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	followups, err := s.ListFollowUps(1)
	if err != nil {
		t.Fatalf("ListFollowUps: %v", err)
	}
	if len(followups) != 0 {
		t.Errorf("purchased user got %d follow-ups scheduled", len(followups))
	}
}

func TestSchedule_IdempotentPerService(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, 1)

	sched := NewScheduler(s, time.Hour, nil)
	for i := 0; i < 3; i++ {
		if err := sched.Schedule(1, funnel.ServiceVIP); err != nil {
			t.Fatalf("Schedule %d: %v", i, err)
		}
	}

	followups, err := s.ListFollowUps(1)
	if err != nil {
		t.Fatalf("ListFollowUps: %v", err)
	}
	if len(followups) != 1 {
		t.Errorf("got %d rows, want 1", len(followups))
	}
}

func TestRunOnce_NothingDue(t *testing.T) {
	s := newTestStore(t)
	gw := &fakeGateway{}
	w := NewWorker(s, gw, time.Millisecond)

	done, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if done {
		t.Error("done = true with empty queue")
	}
	if len(gw.sent) != 0 {
		t.Errorf("sent %d messages", len(gw.sent))
	}
}

func TestRunOnce_FiresDueFollowUp(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, 42)

	sched := NewScheduler(s, -time.Minute, nil)
	if err := sched.Schedule(42, funnel.ServiceCopytrade); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	gw := &fakeGateway{}
	w := NewWorker(s, gw, time.Millisecond)

	done, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if !done {
		t.Fatal("done = false with a due follow-up")
	}

	if len(gw.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(gw.sent))
	}
	msg := gw.sent[0]
	if msg.ChatID != 42 {
		t.Errorf("ChatID = %d", msg.ChatID)
	}
	if !strings.Contains(msg.Text, "Copytrade Plan") {
		t.Errorf("message lacks service copy:\n%s", msg.Text)
	}
	if msg.Buttons[0][0].Data != "resume_copytrade" {
		t.Errorf("resume button = %+v", msg.Buttons[0][0])
	}

	followups, err := s.ListFollowUps(42)
	if err != nil {
		t.Fatalf("ListFollowUps: %v", err)
	}
	if followups[0].Status != storage.FollowUpSent {
		t.Errorf("status = %q, want sent", followups[0].Status)
	}
}

// TestRunOnce_SkipsWhenPurchasedAfterScheduling covers the purchase that
// lands between scheduling and firing: the message must not go out.
func TestRunOnce_SkipsWhenPurchasedAfterScheduling(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, 1)

	sched := NewScheduler(s, -time.Minute, nil)
	if err := sched.Schedule(1, funnel.ServiceEA); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	// Purchase while the task is sitting in the queue. RecordPurchase does
	// not cancel rows, so the task is still claimable.
	if err := s.RecordPurchase(storage.Purchase{
		ID: "p-1", UserID: 1, PlanCode: "monthly", Price: "$200", PurchasedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("RecordPurchase: %v", err)
	}

	gw := &fakeGateway{}
	w := NewWorker(s, gw, time.Millisecond)

	done, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if !done {
		t.Fatal("done = false, task should still be claimed")
	}

	if len(gw.sent) != 0 {
		t.Errorf("message sent to purchased user: %+v", gw.sent)
	}
	followups, err := s.ListFollowUps(1)
	if err != nil {
		t.Fatalf("ListFollowUps: %v", err)
	}
	if followups[0].Status != storage.FollowUpSkipped {
		t.Errorf("status = %q, want skipped", followups[0].Status)
	}
}

func TestRunOnce_GatewayFailureMarksFailed(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, 1)

	sched := NewScheduler(s, -time.Minute, nil)
	if err := sched.Schedule(1, funnel.ServiceVIP); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	gw := &fakeGateway{sendErr: errors.New("connection refused")}
	w := NewWorker(s, gw, time.Millisecond)

	if _, err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	followups, err := s.ListFollowUps(1)
	if err != nil {
		t.Fatalf("ListFollowUps: %v", err)
	}
	if followups[0].Status != storage.FollowUpFailed {
		t.Errorf("status = %q, want failed", followups[0].Status)
	}
}

func TestRunOnce_StaleTargetMarksFailed(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, 1)

	sched := NewScheduler(s, -time.Minute, nil)
	if err := sched.Schedule(1, funnel.ServiceStandard); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	gw := &fakeGateway{sendErr: gateway.ErrStale}
	w := NewWorker(s, gw, time.Millisecond)

	if _, err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	followups, err := s.ListFollowUps(1)
	if err != nil {
		t.Fatalf("ListFollowUps: %v", err)
	}
	if followups[0].Status != storage.FollowUpFailed {
		t.Errorf("status = %q, want failed", followups[0].Status)
	}
}

func TestCancelAll_NothingPending(t *testing.T) {
	s := newTestStore(t)
	addUser(t, s, 1)

	sched := NewScheduler(s, time.Hour, nil)
	if err := sched.CancelAll(1, funnel.ResponsePurchased); err != nil {
		t.Fatalf("CancelAll: %v", err)
	}
}

func TestReEngagementMessage_UnknownService(t *testing.T) {
	msg := reEngagementMessage(1, "mystery")
	if !strings.Contains(msg.Text, "didn't complete your purchase") {
		t.Errorf("generic copy missing:\n%s", msg.Text)
	}
	if msg.Buttons[0][0].Data != "resume_mystery" {
		t.Errorf("resume button = %+v", msg.Buttons[0][0])
	}
}
