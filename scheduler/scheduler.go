package scheduler

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"warden-bot/model"
	"warden-bot/utils/database"

	"github.com/jmoiron/sqlx"
)

const (
	// Delays at or under this bound dispatch in-process without touching
	// the job store; a durable round-trip is not worth it for sub-minute
	// waits and the dispatch loop may not have polled yet.
	inlineThreshold = 60 * time.Second

	// The dispatch loop only considers jobs due within this window, so
	// far-future jobs stay out of the poll entirely.
	lookAheadWindow = 10 * 24 * time.Hour

	// Fallback re-poll interval while no job is queued.
	idleRepoll = 30 * time.Second
)

// Handler executes a dispatched job. Errors are logged by the dispatch loop
// and never stop it; a missing referent (user already left, record already
// gone) must be treated as a no-op, not an error.
type Handler func(payload model.JobPayload) error

// JobHandle references a persisted job so callers can cancel it before it
// fires.
type JobHandle struct {
	ID int64
}

// Scheduler maintains the durable queue of delayed actions and the single
// dispatch loop that fires each action at or after its expiry. It is owned
// by the composition root and passed to whoever needs to register jobs.
type Scheduler struct {
	db       *sqlx.DB
	clock    Clock
	handlers map[model.JobKind]Handler
	wake     chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
}

// New creates a scheduler over the given job store. Handlers must be
// registered before Start.
func New(db *sqlx.DB, clock Clock) *Scheduler {
	return &Scheduler{
		db:       db,
		clock:    clock,
		handlers: make(map[model.JobKind]Handler),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// RegisterHandler binds a job kind to its handler.
func (s *Scheduler) RegisterHandler(kind model.JobKind, fn Handler) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown job kind %q: %w", kind, model.ErrConfiguration)
	}
	s.handlers[kind] = fn
	return nil
}

// Schedule registers an action to run after delay. Short delays dispatch
// in-process: the call waits out the delay, runs the handler, and returns a
// nil handle without ever writing a row. Longer delays persist a job row and
// return a handle referencing it. Handler errors never escape to the caller.
func (s *Scheduler) Schedule(kind model.JobKind, delay time.Duration, payload model.JobPayload) (*JobHandle, error) {
	if s.handlers[kind] == nil {
		return nil, fmt.Errorf("no handler registered for job kind %q: %w", kind, model.ErrConfiguration)
	}
	if delay < 0 {
		delay = 0
	}

	if delay <= inlineThreshold {
		select {
		case <-s.clock.After(delay):
			s.dispatch(kind, payload)
		case <-s.done:
		}
		return nil, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload for %s job: %w", kind, err)
	}
	now := s.clock.Now()
	id, err := database.AddDelayedJob(s.db, model.DelayedJob{
		Kind:      kind,
		GuildID:   payload["guild_id"],
		UserID:    payload["user_id"],
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(delay).Unix(),
		Payload:   string(raw),
	})
	if err != nil {
		return nil, err
	}
	s.notify()
	return &JobHandle{ID: id}, nil
}

// Cancel removes a persisted job before it fires. Cancelling a job that
// already dispatched is a no-op.
func (s *Scheduler) Cancel(jobID int64) error {
	if err := database.DeleteJob(s.db, jobID); err != nil {
		return err
	}
	s.notify()
	return nil
}

// CancelFor removes all pending jobs of one kind for a member, e.g. the
// pending mute expiry of a member who just got banned.
func (s *Scheduler) CancelFor(kind model.JobKind, guildID, userID string) error {
	if err := database.DeleteJobsFor(s.db, kind, guildID, userID); err != nil {
		return err
	}
	s.notify()
	return nil
}

// notify wakes the dispatch loop so it re-polls; a pending signal is enough.
func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Start launches the dispatch loop. Exactly one loop runs per process.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run()
	}()
}

// Stop signals the dispatch loop to exit and waits for it, interrupting any
// in-flight sleep.
func (s *Scheduler) Stop() {
	close(s.done)
	s.wg.Wait()
}

func (s *Scheduler) run() {
	for {
		select {
		case <-s.done:
			return
		default:
		}

		job, err := database.EarliestJobWithin(s.db, s.clock.Now(), lookAheadWindow)
		if err != nil {
			log.Printf("Error polling delayed jobs: %v", err)
			if !s.wait(idleRepoll) {
				return
			}
			continue
		}
		if job == nil {
			if !s.wait(idleRepoll) {
				return
			}
			continue
		}

		if until := time.Unix(job.ExpiresAt, 0).Sub(s.clock.Now()); until > 0 {
			// Re-poll after the sleep: an earlier job or a cancellation
			// may have landed in the meantime.
			if !s.wait(until) {
				return
			}
			continue
		}

		// The row may have been cancelled while we slept.
		exists, err := database.JobExists(s.db, job.ID)
		if err != nil {
			log.Printf("Error checking delayed job %d: %v", job.ID, err)
			if !s.wait(idleRepoll) {
				return
			}
			continue
		}
		if exists {
			var payload model.JobPayload
			if err := json.Unmarshal([]byte(job.Payload), &payload); err != nil {
				log.Printf("Failed to decode payload of %s job %d: %v", job.Kind, job.ID, err)
			} else {
				s.dispatch(job.Kind, payload)
			}
		}
		if err := database.DeleteJob(s.db, job.ID); err != nil {
			log.Printf("Failed to delete delayed job %d: %v", job.ID, err)
		}
	}
}

// wait blocks until d elapses, a wake signal arrives, or shutdown begins.
// It returns false on shutdown.
func (s *Scheduler) wait(d time.Duration) bool {
	select {
	case <-s.clock.After(d):
		return true
	case <-s.wake:
		return true
	case <-s.done:
		return false
	}
}

func (s *Scheduler) dispatch(kind model.JobKind, payload model.JobPayload) {
	fn := s.handlers[kind]
	if fn == nil {
		log.Printf("No handler registered for job kind %q, dropping job (payload %v)", kind, payload)
		return
	}
	if err := fn(payload); err != nil {
		log.Printf("Job %s failed (payload %v): %v", kind, payload, err)
	}
}
