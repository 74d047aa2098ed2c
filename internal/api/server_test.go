package api

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hiehoo/tnetbot/internal/dispatch"
	"github.com/hiehoo/tnetbot/internal/storage"
)

const testToken = "test-token-12345"

type fakeSubmitter struct {
	events []dispatch.Event
	err    error
}

func (f *fakeSubmitter) Submit(ctx context.Context, e dispatch.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func setupAppHandler(t *testing.T, token string) (http.Handler, *storage.Store, *fakeSubmitter) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sub := &fakeSubmitter{}
	handler := NewAppHandler(AppDeps{
		Store: store,
		Loop:  sub,
		Token: token,
	})
	return handler, store, sub
}

func authReq(method, url, body, token string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestHealth_NoAuthRequired(t *testing.T) {
	h, _, _ := setupAppHandler(t, testToken)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	h, _, _ := setupAppHandler(t, testToken)

	rr := httptest.NewRecorder()
	req := authReq(http.MethodGet, "/stats", "", "")
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var resp map[string]map[string]string
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp["error"]["type"] != "authentication_error" {
		t.Errorf("error type = %q, want %q", resp["error"]["type"], "authentication_error")
	}
}

func TestAuth_WrongToken(t *testing.T) {
	h, _, _ := setupAppHandler(t, testToken)

	rr := httptest.NewRecorder()
	req := authReq(http.MethodGet, "/stats", "", "wrong-token")
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuth_EmptyConfiguredTokenRejectsAll(t *testing.T) {
	h, _, _ := setupAppHandler(t, "")

	rr := httptest.NewRecorder()
	req := authReq(http.MethodGet, "/stats", "", "")
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSubmitEvent_StartQueued(t *testing.T) {
	h, _, sub := setupAppHandler(t, testToken)

	body := `{"user_id":42,"username":"trader","first_name":"Alex","kind":"start","campaign":"ea_campaign"}`
	rr := httptest.NewRecorder()
	req := authReq(http.MethodPost, "/events", body, testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d; body = %s", rr.Code, http.StatusAccepted, rr.Body.String())
	}
	if len(sub.events) != 1 {
		t.Fatalf("queued %d events, want 1", len(sub.events))
	}
	e := sub.events[0]
	if e.UserID != 42 || e.Kind != dispatch.EventStart || e.Campaign != "ea_campaign" {
		t.Errorf("queued event = %+v", e)
	}
}

func TestSubmitEvent_ButtonRequiresSelection(t *testing.T) {
	h, _, sub := setupAppHandler(t, testToken)

	body := `{"user_id":42,"kind":"button"}`
	rr := httptest.NewRecorder()
	req := authReq(http.MethodPost, "/events", body, testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if len(sub.events) != 0 {
		t.Errorf("queued %d events, want 0", len(sub.events))
	}
}

func TestSubmitEvent_UnknownKind(t *testing.T) {
	h, _, _ := setupAppHandler(t, testToken)

	body := `{"user_id":42,"kind":"poke"}`
	rr := httptest.NewRecorder()
	req := authReq(http.MethodPost, "/events", body, testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSubmitEvent_MissingUserID(t *testing.T) {
	h, _, _ := setupAppHandler(t, testToken)

	body := `{"kind":"start"}`
	rr := httptest.NewRecorder()
	req := authReq(http.MethodPost, "/events", body, testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestStats_Shape(t *testing.T) {
	h, store, _ := setupAppHandler(t, testToken)

	if err := store.UpsertUser(1, "a", "Alice", "", "ea_campaign"); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := store.UpsertUser(2, "b", "Bob", "", ""); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	rr := httptest.NewRecorder()
	req := authReq(http.MethodGet, "/stats", "", testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body = %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var stats storage.Stats
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if stats.Users != 2 {
		t.Errorf("Users = %d, want 2", stats.Users)
	}
	if stats.Campaigns["ea_campaign"] != 1 {
		t.Errorf("Campaigns[ea_campaign] = %d, want 1", stats.Campaigns["ea_campaign"])
	}
}

func TestUserDetail_Found(t *testing.T) {
	h, store, _ := setupAppHandler(t, testToken)

	if err := store.UpsertUser(7, "trader", "Alex", "K", "vip_campaign"); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := store.BumpServiceView(7, "vip"); err != nil {
		t.Fatalf("BumpServiceView failed: %v", err)
	}

	rr := httptest.NewRecorder()
	req := authReq(http.MethodGet, "/users/7", "", testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body = %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var detail storage.UserDetail
	if err := json.NewDecoder(rr.Body).Decode(&detail); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if detail.User.ID != 7 || detail.User.Campaign != "vip_campaign" {
		t.Errorf("user = %+v", detail.User)
	}
	if len(detail.Views) != 1 || detail.Views[0].Service != "vip" {
		t.Errorf("views = %+v", detail.Views)
	}
}

func TestUserDetail_NotFound(t *testing.T) {
	h, _, _ := setupAppHandler(t, testToken)

	rr := httptest.NewRecorder()
	req := authReq(http.MethodGet, "/users/999", "", testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUserDetail_BadID(t *testing.T) {
	h, _, _ := setupAppHandler(t, testToken)

	rr := httptest.NewRecorder()
	req := authReq(http.MethodGet, "/users/abc", "", testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestExportUsers_CSV(t *testing.T) {
	h, store, _ := setupAppHandler(t, testToken)

	if err := store.UpsertUser(1, "alice", "Alice", "A", "ea_campaign"); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if err := store.RecordPurchase(storage.Purchase{
		ID:          "p1",
		UserID:      1,
		PlanCode:    "monthly",
		Price:       "$200/month",
		PurchasedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}

	rr := httptest.NewRecorder()
	req := authReq(http.MethodGet, "/users.csv", "", testToken)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body = %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want %q", ct, "text/csv")
	}

	records, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("csv rows = %d, want 2", len(records))
	}
	if records[0][0] != "User ID" || records[0][8] != "Purchase Count" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "1" || records[1][1] != "alice" || records[1][8] != "1" {
		t.Errorf("row = %v", records[1])
	}
}
