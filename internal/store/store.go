// Package store keeps privacy-conscious visitor metrics and playground usage
// in SQLite. Visitors are stored by hashed IP only.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// Retention is how long visitor rows are kept.
const Retention = 365 * 24 * time.Hour

// Visitor is one tracked page view.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// TopicStat counts playground queries per topic.
type TopicStat struct {
	Topic   string    `json:"topic"`
	Queries int64     `json:"queries"`
	LastAt  time.Time `json:"last_at"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64       `json:"total_visitors"`
	UniqueVisitors   int64       `json:"unique_visitors"`
	VisitorsToday    int64       `json:"visitors_today"`
	VisitorsThisWeek int64       `json:"visitors_this_week"`
	TotalQueries     int64       `json:"total_queries"`
	TopTopics        []TopicStat `json:"top_topics"`
	RecentVisitors   []Visitor   `json:"recent_visitors"`
}

// Store wraps the database handle.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and migrates it. Use
// ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database lives on a single connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
		`CREATE TABLE IF NOT EXISTS playground_queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			hashed_ip TEXT,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS playground_queries_topic ON playground_queries (topic)`,
		`CREATE INDEX IF NOT EXISTS playground_queries_timestamp ON playground_queries (timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(ctx context.Context, hashedIP, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordQuery stores which topic a playground query matched. The query text
// itself is not kept.
func (s *Store) RecordQuery(ctx context.Context, topic, hashedIP string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO playground_queries (topic, hashed_ip, timestamp)
		VALUES (?, ?, ?)
	`, topic, hashedIP, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record query: %w", err)
	}
	return nil
}

// Stats summarises visitors and playground usage.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{midnight.Unix()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour).Unix()}},
		{&stats.TotalQueries, `SELECT COUNT(*) FROM playground_queries`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	if stats.TopTopics, err = s.TopTopics(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

// TopTopics returns the most asked playground topics.
func (s *Store) TopTopics(ctx context.Context, limit int) ([]TopicStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT topic, COUNT(*) AS queries, MAX(timestamp)
		FROM playground_queries
		GROUP BY topic
		ORDER BY queries DESC, topic ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top topics: %w", err)
	}
	defer rows.Close()

	var topics []TopicStat
	for rows.Next() {
		var t TopicStat
		var last int64
		if err := rows.Scan(&t.Topic, &t.Queries, &last); err != nil {
			return nil, fmt.Errorf("top topics: %w", err)
		}
		t.LastAt = time.Unix(last, 0)
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// RecentVisitors returns the latest page views, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var visitors []Visitor
	for rows.Next() {
		var v Visitor
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0)
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// PruneVisitors deletes visitor and playground rows older than the retention
// period and returns how many were removed.
func (s *Store) PruneVisitors(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-Retention).Unix()
	var total int64
	for _, stmt := range []string{
		`DELETE FROM visitors WHERE timestamp < ?`,
		`DELETE FROM playground_queries WHERE timestamp < ?`,
	} {
		res, err := s.db.ExecContext(ctx, stmt, cutoff)
		if err != nil {
			return total, fmt.Errorf("prune visitors: %w", err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if total > 0 {
		log.Printf("Privacy cleanup: Removed %d records older than 12 months", total)
	}
	return total, nil
}

// ForgetVisitor deletes every row stored for one hashed IP.
func (s *Store) ForgetVisitor(ctx context.Context, hashedIP string) (int64, error) {
	var total int64
	for _, stmt := range []string{
		`DELETE FROM visitors WHERE hashed_ip = ?`,
		`DELETE FROM playground_queries WHERE hashed_ip = ?`,
	} {
		res, err := s.db.ExecContext(ctx, stmt, hashedIP)
		if err != nil {
			return total, fmt.Errorf("forget visitor: %w", err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}
