package models

import (
	"time"
)

// Outcome describes the result of one game's refresh within a run.
type Outcome string

const (
	OutcomeUpdated  Outcome = "UPDATED"
	OutcomeNoChange Outcome = "NO_CHANGE"
	OutcomeFailed   Outcome = "FAILED"
)

// FailureReason enumerates the recoverable per-game failure conditions.
type FailureReason string

const (
	FailureSourceUnavailable   FailureReason = "SOURCE_UNAVAILABLE"
	FailureSourceFormatChanged FailureReason = "SOURCE_FORMAT_CHANGED"
	FailureNoValidData         FailureReason = "NO_VALID_DATA"
	FailureStoreUnavailable    FailureReason = "STORE_UNAVAILABLE"
)

// RejectionReason enumerates why the validator refused a candidate draw.
type RejectionReason string

const (
	RejectBadDate         RejectionReason = "BAD_DATE"
	RejectWrongCount      RejectionReason = "WRONG_COUNT"
	RejectDuplicateNumber RejectionReason = "DUPLICATE_NUMBER"
	RejectOutOfRange      RejectionReason = "OUT_OF_RANGE"
	RejectBonusOutOfRange RejectionReason = "BONUS_OUT_OF_RANGE"
)

// Rejection records a validator refusal, attributable to a specific field.
type Rejection struct {
	Date   string          `json:"date,omitempty"`
	Reason RejectionReason `json:"reason"`
	Field  string          `json:"field"`
	Detail string          `json:"detail,omitempty"`
}

// GameReport is the per-game outcome of one refresh run. Failures in one
// game never affect sibling reports.
type GameReport struct {
	Game       Game          `json:"game"`
	Outcome    Outcome       `json:"outcome"`
	Inserted   int           `json:"inserted"`
	Source     string        `json:"source,omitempty"` // adapter that supplied the data
	Failure    FailureReason `json:"failure,omitempty"`
	Error      string        `json:"error,omitempty"`
	Rejections []Rejection   `json:"rejections,omitempty"`
}

// RunReport summarizes one execution of the refresh pipeline across all
// games. The run is best-effort, not a transaction: each game's outcome is
// independent so callers can see partial success.
type RunReport struct {
	RunID      string               `json:"runId"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt time.Time            `json:"finishedAt"`
	Games      map[Game]*GameReport `json:"games"`
}

// Updated reports whether any game inserted at least one draw.
func (r *RunReport) Updated() bool {
	for _, g := range r.Games {
		if g.Outcome == OutcomeUpdated {
			return true
		}
	}
	return false
}
