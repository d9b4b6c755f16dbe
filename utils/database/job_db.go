package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"warden-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddDelayedJob inserts a new delayed job and returns its row ID.
func AddDelayedJob(db *sqlx.DB, job model.DelayedJob) (int64, error) {
	query := `INSERT INTO delayed_jobs (kind, guild_id, user_id, created_at, expires_at, payload)
              VALUES (:kind, :guild_id, :user_id, :created_at, :expires_at, :payload)`

	result, err := db.NamedExec(query, job)
	if err != nil {
		return 0, fmt.Errorf("failed to insert delayed job: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get delayed job ID: %w", err)
	}
	return id, nil
}

// EarliestJobWithin retrieves the single job with the earliest expiry that
// falls inside the look-ahead window, or nil if no such job exists. Bounding
// the window keeps far-future jobs out of the dispatch loop.
func EarliestJobWithin(db *sqlx.DB, now time.Time, window time.Duration) (*model.DelayedJob, error) {
	var job model.DelayedJob
	query := `SELECT * FROM delayed_jobs WHERE expires_at <= ? ORDER BY expires_at, id LIMIT 1`
	err := db.Get(&job, query, now.Add(window).Unix())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get earliest delayed job: %w", err)
	}
	return &job, nil
}

// JobExists reports whether the job row is still present. The dispatch loop
// checks this immediately before firing so cancelled jobs are dropped.
func JobExists(db *sqlx.DB, jobID int64) (bool, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM delayed_jobs WHERE id = ?", jobID); err != nil {
		return false, fmt.Errorf("failed to check delayed job %d: %w", jobID, err)
	}
	return count > 0, nil
}

// DeleteJob removes a job row. Deleting an already-removed job is not an
// error: dispatch and cancellation may race.
func DeleteJob(db *sqlx.DB, jobID int64) error {
	if _, err := db.Exec("DELETE FROM delayed_jobs WHERE id = ?", jobID); err != nil {
		return fmt.Errorf("failed to delete delayed job %d: %w", jobID, err)
	}
	return nil
}

// DeleteJobsFor removes all pending jobs of one kind for a member, e.g. a
// pending mute expiry when the member gets banned.
func DeleteJobsFor(db *sqlx.DB, kind model.JobKind, guildID, userID string) error {
	query := "DELETE FROM delayed_jobs WHERE kind = ? AND guild_id = ? AND user_id = ?"
	if _, err := db.Exec(query, kind, guildID, userID); err != nil {
		return fmt.Errorf("failed to delete %s jobs for user %s in guild %s: %w", kind, userID, guildID, err)
	}
	return nil
}

// CountJobs returns the number of pending delayed jobs.
func CountJobs(db *sqlx.DB) (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM delayed_jobs"); err != nil {
		return 0, fmt.Errorf("failed to count delayed jobs: %w", err)
	}
	return count, nil
}
