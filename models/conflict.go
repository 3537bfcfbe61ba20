package models

import (
	"fmt"
	"strings"
	"time"
)

// Conflict describes a record whose local and remote copies diverged. It is
// transient and discarded once resolved.
type Conflict struct {
	Ref             RecordRef `json:"ref"`
	LocalPayload    Payload   `json:"local_payload"`
	RemotePayload   Payload   `json:"remote_payload,omitempty"`
	LocalUpdatedAt  time.Time `json:"local_updated_at"`
	RemoteUpdatedAt time.Time `json:"remote_updated_at"`
	DetectedAt      time.Time `json:"detected_at"`
}

// ResolutionStrategy selects how a conflict is settled.
type ResolutionStrategy int

const (
	// StrategyLocalWins uploads the local copy over the remote one.
	StrategyLocalWins ResolutionStrategy = iota
	// StrategyServerWins overwrites the local copy with the remote one.
	StrategyServerWins
	// StrategyManual leaves both copies untouched for the user to merge.
	StrategyManual
)

var strategyNames = [...]string{
	StrategyLocalWins:  "local-wins",
	StrategyServerWins: "server-wins",
	StrategyManual:     "manual",
}

// Valid reports whether s is one of the declared strategies.
func (s ResolutionStrategy) Valid() bool {
	return s >= StrategyLocalWins && s <= StrategyManual
}

func (s ResolutionStrategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ResolutionStrategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseResolutionStrategy converts a textual strategy name (as used in
// configuration and CLI flags) into a ResolutionStrategy.
func ParseResolutionStrategy(s string) (ResolutionStrategy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range strategyNames {
		if n == name {
			return ResolutionStrategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resolution strategy %q", s)
}
