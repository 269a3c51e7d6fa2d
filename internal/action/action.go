// Package action implements the console commands. Every command runs against
// an Env, ends COMPLETED or ERROR, and describes itself in the action log.
package action

import (
	"errors"
	"fmt"
	"io"

	"github.com/talgya/settleplan/internal/engine"
	"github.com/talgya/settleplan/internal/persistence"
)

// ErrNoBackup is returned when restoring before any backup was taken.
var ErrNoBackup = errors.New("no backup available")

// Status is the outcome of an executed action.
type Status uint8

const (
	StatusPending   Status = iota // Not executed yet
	StatusCompleted               // Ran to completion
	StatusError                   // Rejected; see ErrorMessage
)

// StatusName returns the display name for a status.
func StatusName(s Status) string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusCompleted:
		return "COMPLETED"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (s Status) String() string { return StatusName(s) }

// Action is one console command.
type Action interface {
	Act(env *Env)
	Status() Status
	ErrorMessage() string
	String() string
}

// HistorySource serves sampled plan scores.
type HistorySource interface {
	PlanHistory(planID, limit int) ([]persistence.ScoreSample, error)
}

// Env is everything an action may touch.
type Env struct {
	Sim     *engine.Simulation
	Out     io.Writer
	Log     *Log
	Backup  *Backup
	History HistorySource // nil when the journal is disabled
	MaxStep int           // Upper bound for a single step; 0 means unbounded
}

// base tracks the outcome shared by every action.
type base struct {
	status Status
	errMsg string
}

func (b *base) Status() Status       { return b.status }
func (b *base) ErrorMessage() string { return b.errMsg }

func (b *base) complete() { b.status = StatusCompleted }

// fail records msg and echoes it to the console.
func (b *base) fail(out io.Writer, msg string) {
	b.status = StatusError
	b.errMsg = msg
	fmt.Fprintf(out, "Error: %s\n", msg)
}
