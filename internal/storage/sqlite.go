// Package storage persists pipeline output to a relational sink so the
// results survive beyond the flat-file artifacts.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"reviewlens/internal/config"
	"reviewlens/internal/models"
)

// ErrBankNotFound is returned by per-bank queries when no rows exist
// for the requested bank.
var ErrBankNotFound = errors.New("bank not found in store")

// Store provides SQLite-based persistence for processed reviews and
// their theme assignments.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and
// initializes the schema.
func Open(dbPath string) (*Store, error) {
	// Writes are serialized by SQLite anyway, so the pool stays small.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL&_synchronous=NORMAL", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS banks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		app_id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reviews (
		review_id TEXT PRIMARY KEY,
		bank_id TEXT NOT NULL,
		review_text TEXT NOT NULL,
		cleaned_text TEXT NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		review_date TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT 'Google Play Store',
		thumbs_up INTEGER NOT NULL DEFAULT 0,
		app_version TEXT,
		word_count INTEGER NOT NULL,
		review_length INTEGER NOT NULL,
		sentiment_label TEXT,
		sentiment_score REAL,
		sentiment_category TEXT,
		processed_at TEXT NOT NULL,
		FOREIGN KEY (bank_id) REFERENCES banks(id)
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_bank_id ON reviews(bank_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_rating ON reviews(rating);

	CREATE TABLE IF NOT EXISTS theme_assignments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		review_id TEXT NOT NULL,
		bank_id TEXT NOT NULL,
		theme TEXT NOT NULL,
		matched_keywords TEXT NOT NULL,
		sentiment_category TEXT,
		FOREIGN KEY (review_id) REFERENCES reviews(review_id)
	);

	CREATE INDEX IF NOT EXISTS idx_theme_assignments_review_id ON theme_assignments(review_id);
	CREATE INDEX IF NOT EXISTS idx_theme_assignments_theme ON theme_assignments(theme);
	`

	_, err := s.db.Exec(schema)

	return err
}

// SaveBanks upserts the bank registry.
func (s *Store) SaveBanks(banks []config.BankConfig) error {
	query := `INSERT OR REPLACE INTO banks (id, name, app_id) VALUES (?, ?, ?)`

	for _, b := range banks {
		if _, err := s.db.Exec(query, b.ID, b.Name, b.AppID); err != nil {
			return fmt.Errorf("failed to save bank %s: %w", b.ID, err)
		}
	}

	return nil
}

// SaveReviews inserts scored reviews in a single transaction. An
// existing row with the same review_id is replaced, so re-running the
// pipeline over the same dataset is safe.
func (s *Store) SaveReviews(reviews []models.ScoredReview) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT OR REPLACE INTO reviews
		(review_id, bank_id, review_text, cleaned_text, rating, review_date, source,
		 thumbs_up, app_version, word_count, review_length,
		 sentiment_label, sentiment_score, sentiment_category, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range reviews {
		_, err := stmt.Exec(
			r.ReviewID,
			r.Bank,
			r.ReviewText,
			r.CleanedText,
			r.Rating,
			r.Date,
			r.Source,
			r.ThumbsUp,
			r.AppVersion,
			r.WordCount,
			r.ReviewLength,
			r.Sentiment.Label,
			r.Sentiment.Confidence,
			string(r.Sentiment.Category),
			r.ProcessedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save review %s: %w", r.ReviewID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SaveThemeAssignments replaces all stored assignments with the given
// set. Assignments are derived data, so a full rewrite per run keeps the
// table consistent with the reviews.
func (s *Store) SaveThemeAssignments(assignments []models.ThemeAssignment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM theme_assignments`); err != nil {
		return fmt.Errorf("failed to clear old assignments: %w", err)
	}

	query := `
		INSERT INTO theme_assignments (review_id, bank_id, theme, matched_keywords, sentiment_category)
		VALUES (?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		_, err := stmt.Exec(a.ReviewID, a.Bank, a.Theme, strings.Join(a.MatchedKeywords, ","), string(a.Sentiment))
		if err != nil {
			return fmt.Errorf("failed to save assignment for review %s: %w", a.ReviewID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountReviews returns the total number of stored reviews.
func (s *Store) CountReviews() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return count, nil
}

// CountReviewsByBank returns per-bank review counts.
func (s *Store) CountReviewsByBank() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT bank_id, COUNT(*) FROM reviews GROUP BY bank_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews per bank: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var (
			bank  string
			count int
		)

		if err := rows.Scan(&bank, &count); err != nil {
			return nil, fmt.Errorf("failed to scan bank count: %w", err)
		}

		counts[bank] = count
	}

	return counts, rows.Err()
}

// AverageRating returns the mean rating for one bank's stored reviews.
func (s *Store) AverageRating(bankID string) (float64, error) {
	var avg sql.NullFloat64

	err := s.db.QueryRow(`SELECT AVG(rating) FROM reviews WHERE bank_id = ?`, bankID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}

	if !avg.Valid {
		return 0, fmt.Errorf("%w: %s", ErrBankNotFound, bankID)
	}

	return avg.Float64, nil
}

// ThemeCounts returns stored assignment counts per theme, largest first.
func (s *Store) ThemeCounts() ([]models.ThemeCount, error) {
	rows, err := s.db.Query(`
		SELECT theme, COUNT(*) AS n FROM theme_assignments
		GROUP BY theme ORDER BY n DESC, theme
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count themes: %w", err)
	}
	defer rows.Close()

	var counts []models.ThemeCount

	for rows.Next() {
		var tc models.ThemeCount
		if err := rows.Scan(&tc.Theme, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan theme count: %w", err)
		}

		counts = append(counts, tc)
	}

	return counts, rows.Err()
}
