package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/counterline/internal/progress"
	"github.com/abhisek/counterline/internal/score"
)

// progressRepo implements progress.Store on the day_progress and
// unlocked_content tables.
type progressRepo struct {
	db *sql.DB
}

var _ progress.Store = (*progressRepo)(nil)

func (r *progressRepo) Load(ctx context.Context) (progress.Snapshot, error) {
	snap := progress.Snapshot{
		Days:     make(map[string]progress.DayProgress),
		Unlocked: make(map[string]time.Time),
	}

	query, args := builder().Select(colDayID, colCompleted, colBestScore, colBestGrade, colAttemptCount, colLastPlayed).
		From(entsql.Table(tableDayProgress)).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return snap, fmt.Errorf("query day progress: %w", err)
	}
	for rows.Next() {
		var (
			p     progress.DayProgress
			grade string
		)
		if err := rows.Scan(&p.DayID, &p.Completed, &p.BestScore, &grade, &p.AttemptCount, &p.LastPlayed); err != nil {
			rows.Close()
			return snap, fmt.Errorf("scan day progress: %w", err)
		}
		p.BestGrade = score.Grade(grade)
		snap.Days[p.DayID] = p
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return snap, fmt.Errorf("query day progress: %w", err)
	}
	rows.Close()

	query, args = builder().Select(colContentID, colUnlockedAt).
		From(entsql.Table(tableUnlockedContent)).
		Query()
	rows, err = r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return snap, fmt.Errorf("query unlocked content: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id string
			at time.Time
		)
		if err := rows.Scan(&id, &at); err != nil {
			return snap, fmt.Errorf("scan unlocked content: %w", err)
		}
		snap.Unlocked[id] = at
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("query unlocked content: %w", err)
	}
	return snap, nil
}

func (r *progressRepo) SaveDay(ctx context.Context, p progress.DayProgress) error {
	query, args := builder().Insert(tableDayProgress).
		Columns(colDayID, colCompleted, colBestScore, colBestGrade, colAttemptCount, colLastPlayed).
		Values(p.DayID, p.Completed, p.BestScore, string(p.BestGrade), p.AttemptCount, p.LastPlayed.UTC()).
		OnConflict(
			entsql.ConflictColumns(colDayID),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save day progress: %w", err)
	}
	return nil
}

func (r *progressRepo) SaveUnlock(ctx context.Context, contentID string, at time.Time) error {
	query, args := builder().Insert(tableUnlockedContent).
		Columns(colContentID, colUnlockedAt).
		Values(contentID, at.UTC()).
		OnConflict(
			entsql.ConflictColumns(colContentID),
			entsql.DoNothing(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save unlock: %w", err)
	}
	return nil
}

// Reset deletes every day record and unlock in one transaction.
func (r *progressRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	for _, table := range []string{tableDayProgress, tableUnlockedContent} {
		query, args := builder().Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
