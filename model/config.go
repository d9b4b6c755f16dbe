package model

import "time"

// Config holds the process-wide configuration loaded from the environment
// and config.yaml. Per-guild moderation settings live in the database.
type Config struct {
	BotToken            string
	AppID               string
	DataDir             string
	LogChannelID        string
	DefaultMuteDuration time.Duration
	DeveloperUserIDs    []string
}
