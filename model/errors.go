package model

import "errors"

// Sentinel errors shared by the scheduler and the moderation service.
// Callers branch on them with errors.Is.
var (
	// ErrConfiguration means a required guild setting (mute role, probation
	// role, job handler) is missing or unrecognized.
	ErrConfiguration = errors.New("missing configuration")

	// ErrPermissionDenied means the bot lacks the Discord permission needed
	// to perform a restriction action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means the referent (user, role, ban) no longer exists.
	// Expiry handlers treat it as a no-op.
	ErrNotFound = errors.New("not found")
)
