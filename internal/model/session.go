package model

import (
	"time"
)

// Session is the process-local record of an authenticated user. It lives
// in memory only and is gone at logout or process end.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	StartedAt time.Time `json:"started_at"`
}
