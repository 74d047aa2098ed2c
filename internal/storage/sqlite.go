package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database with methods for users, interactions,
// service views, purchases, and follow-ups.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database in dataDir and runs pending migrations.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "tnetbot.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	// Set busy timeout so concurrent access waits briefly instead of failing immediately.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't been run yet.
func (s *Store) migrate() error {
	// Ensure schema_version table exists (bootstrap).
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort by filename to guarantee ascending order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		// Check if already applied.
		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// AppliedMigrations returns the list of applied migration versions in ascending order.
func (s *Store) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query("SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// --- Users ---

// UpsertUser inserts a user on first sight, stamping join_date, or updates
// the mutable attributes and last_interaction on repeat calls. The campaign
// is fixed at first contact and never overwritten.
func (s *Store) UpsertUser(id int64, username, firstName, lastName, campaign string) error {
	now := fmtTime(time.Now())

	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE user_id = ?", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking user %d: %w", id, err)
	}

	if exists == 0 {
		_, err = s.db.Exec(`
			INSERT INTO users (user_id, username, first_name, last_name, join_date, last_interaction, campaign)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, username, firstName, lastName, now, now, campaign,
		)
	} else {
		_, err = s.db.Exec(`
			UPDATE users SET username = ?, first_name = ?, last_name = ?, last_interaction = ?
			WHERE user_id = ?`,
			username, firstName, lastName, now, id,
		)
	}
	return err
}

// GetUser returns the user with the given id, or ErrNotFound.
func (s *Store) GetUser(id int64) (User, error) {
	var u User
	var joined, last string
	err := s.db.QueryRow(`
		SELECT user_id, username, first_name, last_name, join_date, last_interaction, purchased, campaign
		FROM users WHERE user_id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &joined, &last, &u.Purchased, &u.Campaign)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	if u.JoinedAt, err = parseTime("join_date", joined); err != nil {
		return User{}, err
	}
	if u.LastInteraction, err = parseTime("last_interaction", last); err != nil {
		return User{}, err
	}
	return u, nil
}

// HasPurchased reports whether the user has any confirmed purchase.
// An unknown user has not purchased.
func (s *Store) HasPurchased(id int64) (bool, error) {
	var purchased bool
	err := s.db.QueryRow("SELECT purchased FROM users WHERE user_id = ?", id).Scan(&purchased)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return purchased, nil
}

// --- Interactions ---

// AppendInteraction records an interaction event and refreshes the user's
// last_interaction timestamp in the same transaction.
func (s *Store) AppendInteraction(i Interaction) error {
	payload := i.PayloadJSON
	if payload == "" {
		payload = "{}"
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning interaction transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE users SET last_interaction = ? WHERE user_id = ?`,
		fmtTime(i.CreatedAt), i.UserID); err != nil {
		return fmt.Errorf("refreshing last_interaction: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO interactions (id, user_id, kind, payload_json, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		i.ID, i.UserID, i.Kind, payload, fmtTime(i.CreatedAt)); err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}

	return tx.Commit()
}

// ListInteractions returns a user's interactions, oldest first.
func (s *Store) ListInteractions(userID int64) ([]Interaction, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, kind, payload_json, created_at
		FROM interactions WHERE user_id = ? ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		var i Interaction
		var created string
		if err := rows.Scan(&i.ID, &i.UserID, &i.Kind, &i.PayloadJSON, &created); err != nil {
			return nil, err
		}
		if i.CreatedAt, err = parseTime("created_at", created); err != nil {
			return nil, err
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}

// --- Service views ---

// BumpServiceView inserts a (user, service) counter at 1 or increments an
// existing one, setting last_viewed either way.
func (s *Store) BumpServiceView(userID int64, service string) error {
	_, err := s.db.Exec(`
		INSERT INTO service_views (user_id, service, view_count, last_viewed) VALUES (?, ?, 1, ?)
		ON CONFLICT(user_id, service) DO UPDATE SET
			view_count = view_count + 1,
			last_viewed = excluded.last_viewed`,
		userID, service, fmtTime(time.Now()),
	)
	return err
}

// GetServiceView returns the view counter for one (user, service) pair.
func (s *Store) GetServiceView(userID int64, service string) (ServiceView, error) {
	var v ServiceView
	var last string
	err := s.db.QueryRow(`
		SELECT user_id, service, view_count, last_viewed
		FROM service_views WHERE user_id = ? AND service = ?`, userID, service,
	).Scan(&v.UserID, &v.Service, &v.ViewCount, &last)
	if err == sql.ErrNoRows {
		return ServiceView{}, ErrNotFound
	}
	if err != nil {
		return ServiceView{}, err
	}
	if v.LastViewed, err = parseTime("last_viewed", last); err != nil {
		return ServiceView{}, err
	}
	return v, nil
}

// ListServiceViews returns all view counters for a user.
func (s *Store) ListServiceViews(userID int64) ([]ServiceView, error) {
	rows, err := s.db.Query(`
		SELECT user_id, service, view_count, last_viewed
		FROM service_views WHERE user_id = ? ORDER BY service`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []ServiceView
	for rows.Next() {
		var v ServiceView
		var last string
		if err := rows.Scan(&v.UserID, &v.Service, &v.ViewCount, &last); err != nil {
			return nil, err
		}
		if v.LastViewed, err = parseTime("last_viewed", last); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// --- Purchases ---

// RecordPurchase inserts a purchase row and sets the user's purchased flag
// in one transaction, so neither can exist without the other.
func (s *Store) RecordPurchase(p Purchase) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning purchase transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPurchase(tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

// ConfirmPurchase records a purchase and cancels every still-scheduled
// follow-up for the user in the same transaction. It returns the number of
// follow-ups canceled.
func (s *Store) ConfirmPurchase(p Purchase, response string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning confirmation transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPurchase(tx, p); err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		UPDATE followups SET status = ?, response = ?, updated_at = ?
		WHERE user_id = ? AND status = ?`,
		FollowUpCanceled, response, fmtTime(time.Now()), p.UserID, FollowUpScheduled)
	if err != nil {
		return 0, fmt.Errorf("canceling follow-ups: %w", err)
	}
	canceled, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return canceled, nil
}

func insertPurchase(tx *sql.Tx, p Purchase) error {
	if _, err := tx.Exec(`
		INSERT INTO purchases (id, user_id, plan_code, price, purchase_date)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.PlanCode, p.Price, fmtTime(p.PurchasedAt)); err != nil {
		return fmt.Errorf("inserting purchase: %w", err)
	}
	if _, err := tx.Exec(`UPDATE users SET purchased = 1 WHERE user_id = ?`, p.UserID); err != nil {
		return fmt.Errorf("setting purchased flag: %w", err)
	}
	return nil
}

// ListPurchases returns a user's purchases, oldest first.
func (s *Store) ListPurchases(userID int64) ([]Purchase, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, plan_code, price, purchase_date
		FROM purchases WHERE user_id = ? ORDER BY purchase_date ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		var p Purchase
		var date string
		if err := rows.Scan(&p.ID, &p.UserID, &p.PlanCode, &p.Price, &date); err != nil {
			return nil, err
		}
		if p.PurchasedAt, err = parseTime("purchase_date", date); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// --- Follow-ups ---

// ScheduleFollowUp persists a scheduled follow-up. It is idempotent per
// (user, service): if a scheduled row already exists, its id is returned
// and nothing new is inserted.
func (s *Store) ScheduleFollowUp(f FollowUp) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning schedule transaction: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRow(`
		SELECT id FROM followups WHERE user_id = ? AND service = ? AND status = ?`,
		f.UserID, f.Service, FollowUpScheduled).Scan(&existing)
	if err == nil {
		tx.Rollback()
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("checking pending follow-up: %w", err)
	}

	now := fmtTime(time.Now())
	if _, err := tx.Exec(`
		INSERT INTO followups (id, user_id, service, scheduled_at, status, response, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, '', ?, ?)`,
		f.ID, f.UserID, f.Service, fmtTime(f.ScheduledAt), FollowUpScheduled, now, now); err != nil {
		return "", fmt.Errorf("inserting follow-up: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return f.ID, nil
}

// ClaimDueFollowUp selects the earliest scheduled follow-up whose time has
// come and flips it to sending in one transaction, so concurrent workers
// cannot claim the same row. Returns nil when nothing is due.
func (s *Store) ClaimDueFollowUp(now time.Time) (*FollowUp, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning claim transaction: %w", err)
	}
	defer tx.Rollback()

	var f FollowUp
	var scheduledAt, createdAt, updatedAt string
	err = tx.QueryRow(`
		SELECT id, user_id, service, scheduled_at, status, response, created_at, updated_at
		FROM followups
		WHERE status = ? AND scheduled_at <= ?
		ORDER BY scheduled_at ASC, created_at ASC
		LIMIT 1`,
		FollowUpScheduled, fmtTime(now),
	).Scan(&f.ID, &f.UserID, &f.Service, &scheduledAt, &f.Status, &f.Response, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting due follow-up: %w", err)
	}

	res, err := tx.Exec(`UPDATE followups SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		FollowUpSending, fmtTime(now), f.ID, FollowUpScheduled)
	if err != nil {
		return nil, fmt.Errorf("claiming follow-up: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim: %w", err)
	}

	f.Status = FollowUpSending
	if f.ScheduledAt, err = parseTime("scheduled_at", scheduledAt); err != nil {
		return nil, err
	}
	if f.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	f.UpdatedAt = now.UTC()
	return &f, nil
}

// MarkFollowUp transitions a single follow-up, scoped by row id.
func (s *Store) MarkFollowUp(id, status string) error {
	res, err := s.db.Exec(`UPDATE followups SET status = ?, updated_at = ? WHERE id = ?`,
		status, fmtTime(time.Now()), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelFollowUps marks every scheduled follow-up for the user canceled.
// Safe to call when none are pending; returns the number canceled.
func (s *Store) CancelFollowUps(userID int64, response string) (int64, error) {
	res, err := s.db.Exec(`
		UPDATE followups SET status = ?, response = ?, updated_at = ?
		WHERE user_id = ? AND status = ?`,
		FollowUpCanceled, response, fmtTime(time.Now()), userID, FollowUpScheduled)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RespondFollowUp records a user's response to the sent follow-up for one
// (user, service) pair.
func (s *Store) RespondFollowUp(userID int64, service, response string) error {
	return s.respond(response, `
		SELECT id FROM followups
		WHERE user_id = ? AND service = ? AND status = ?
		ORDER BY updated_at DESC, created_at DESC LIMIT 1`,
		userID, service, FollowUpSent)
}

// RespondLatestFollowUp records a response that carries no service tag
// against the user's most recently sent follow-up.
func (s *Store) RespondLatestFollowUp(userID int64, response string) error {
	return s.respond(response, `
		SELECT id FROM followups
		WHERE user_id = ? AND status = ?
		ORDER BY updated_at DESC, created_at DESC LIMIT 1`,
		userID, FollowUpSent)
}

func (s *Store) respond(response, query string, args ...any) error {
	var id string
	err := s.db.QueryRow(query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`UPDATE followups SET status = ?, response = ?, updated_at = ? WHERE id = ?`,
		FollowUpResponded, response, fmtTime(time.Now()), id)
	return err
}

// ListFollowUps returns all follow-ups for a user, oldest first.
func (s *Store) ListFollowUps(userID int64) ([]FollowUp, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, service, scheduled_at, status, response, created_at, updated_at
		FROM followups WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFollowUps(rows)
}

func scanFollowUps(rows *sql.Rows) ([]FollowUp, error) {
	var followups []FollowUp
	for rows.Next() {
		var f FollowUp
		var scheduledAt, createdAt, updatedAt string
		if err := rows.Scan(&f.ID, &f.UserID, &f.Service, &scheduledAt, &f.Status, &f.Response, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		var err error
		if f.ScheduledAt, err = parseTime("scheduled_at", scheduledAt); err != nil {
			return nil, err
		}
		if f.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		if f.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
			return nil, err
		}
		followups = append(followups, f)
	}
	return followups, rows.Err()
}

// --- Projection rebuild ---

// ServicesViewed returns the distinct services a user has been shown.
// Used to rebuild the in-memory engagement projection after a restart.
func (s *Store) ServicesViewed(userID int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT service FROM service_views WHERE user_id = ? ORDER BY service`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []string
	for rows.Next() {
		var svc string
		if err := rows.Scan(&svc); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

// --- Operator reporting ---

// Stats aggregates the counters served by the admin surface.
func (s *Store) Stats() (Stats, error) {
	st := Stats{
		FollowUps: make(map[string]int),
		Campaigns: make(map[string]int),
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&st.Users); err != nil {
		return Stats{}, fmt.Errorf("counting users: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM interactions").Scan(&st.Interactions); err != nil {
		return Stats{}, fmt.Errorf("counting interactions: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM purchases").Scan(&st.Purchases); err != nil {
		return Stats{}, fmt.Errorf("counting purchases: %w", err)
	}

	rows, err := s.db.Query("SELECT status, COUNT(*) FROM followups GROUP BY status")
	if err != nil {
		return Stats{}, fmt.Errorf("counting follow-ups: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, err
		}
		st.FollowUps[status] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	crows, err := s.db.Query("SELECT campaign, COUNT(*) FROM users WHERE campaign != '' GROUP BY campaign")
	if err != nil {
		return Stats{}, fmt.Errorf("counting campaigns: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var campaign string
		var count int
		if err := crows.Scan(&campaign, &count); err != nil {
			return Stats{}, err
		}
		st.Campaigns[campaign] = count
	}
	return st, crows.Err()
}

// UserDetail returns everything recorded about one user, or ErrNotFound.
func (s *Store) UserDetail(id int64) (UserDetail, error) {
	u, err := s.GetUser(id)
	if err != nil {
		return UserDetail{}, err
	}

	views, err := s.ListServiceViews(id)
	if err != nil {
		return UserDetail{}, fmt.Errorf("listing service views: %w", err)
	}
	purchases, err := s.ListPurchases(id)
	if err != nil {
		return UserDetail{}, fmt.Errorf("listing purchases: %w", err)
	}
	followups, err := s.ListFollowUps(id)
	if err != nil {
		return UserDetail{}, fmt.Errorf("listing follow-ups: %w", err)
	}

	return UserDetail{User: u, Views: views, Purchases: purchases, FollowUps: followups}, nil
}

// ExportUsers returns one row per user with a purchase count, for CSV export.
func (s *Store) ExportUsers() ([]UserExport, error) {
	rows, err := s.db.Query(`
		SELECT u.user_id, u.username, u.first_name, u.last_name, u.join_date, u.last_interaction,
		       u.purchased, u.campaign, COUNT(p.id)
		FROM users u
		LEFT JOIN purchases p ON u.user_id = p.user_id
		GROUP BY u.user_id
		ORDER BY u.user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []UserExport
	for rows.Next() {
		var e UserExport
		var joined, last string
		if err := rows.Scan(&e.ID, &e.Username, &e.FirstName, &e.LastName, &joined, &last,
			&e.Purchased, &e.Campaign, &e.PurchaseCount); err != nil {
			return nil, err
		}
		if e.JoinedAt, err = parseTime("join_date", joined); err != nil {
			return nil, err
		}
		if e.LastInteraction, err = parseTime("last_interaction", last); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}
