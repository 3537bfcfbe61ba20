package service

import "time"

// utcNow is the clock of the sync engine. Timestamps are truncated to the
// microsecond precision the remote store keeps, so a value survives a round
// trip unchanged.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
