package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// -----------------------------------------------------------------------------
// Feedback Methods (implements feedback.Repository)
// -----------------------------------------------------------------------------

// Append records one feedback entry. The table is append-only: there are no
// update or delete methods on purpose.
func (db *DB) Append(ctx context.Context, fb types.RankingFeedback) error {
	if err := fb.Validate(); err != nil {
		return fmt.Errorf("invalid ranking feedback: %w", err)
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO ranking_feedback (resume_id, vacancy_id, was_helpful, actual_outcome, corrected_score, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		fb.ResumeID, fb.VacancyID, fb.WasHelpful, fb.ActualOutcome, fb.CorrectedScore, fb.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to append ranking feedback: %w", err)
	}
	return nil
}

// ListSince returns feedback recorded at or after the cutoff, oldest first.
func (db *DB) ListSince(ctx context.Context, cutoff time.Time) ([]types.RankingFeedback, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, vacancy_id, was_helpful, actual_outcome, corrected_score, comment, created_at
		 FROM ranking_feedback
		 WHERE created_at >= $1
		 ORDER BY created_at`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking feedback: %w", err)
	}
	defer rows.Close()

	var entries []types.RankingFeedback
	for rows.Next() {
		var fb types.RankingFeedback
		if err := rows.Scan(&fb.ID, &fb.ResumeID, &fb.VacancyID, &fb.WasHelpful, &fb.ActualOutcome, &fb.CorrectedScore, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ranking feedback: %w", err)
		}
		entries = append(entries, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking feedback: %w", err)
	}
	return entries, nil
}

// CountSince returns how many feedback entries were recorded at or after the
// cutoff.
func (db *DB) CountSince(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ranking_feedback WHERE created_at >= $1`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ranking feedback: %w", err)
	}
	return count, nil
}
