// Package wizard drives a customer through the fixed onboarding step
// sequence. The engine tracks position and the highest step reached; it does
// not validate form content and it does not persist anything itself.
package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrStepOutOfRange is returned for step indices outside the table.
	ErrStepOutOfRange = errors.New("step out of range")
	// ErrStepNotReached is returned by Goto when the target is past the
	// high-water mark. Skip-ahead is rejected in the engine, not only in
	// the client.
	ErrStepNotReached = errors.New("step not yet reached")
)

// Engine is the wizard position state machine for one customer session.
type Engine struct {
	current int
	highest int
}

// New returns an engine positioned at the first step.
func New() *Engine {
	return &Engine{}
}

// Resume restores an engine from persisted counters. Counters are clamped
// into range so a corrupt row cannot strand the session, and the high-water
// mark is never allowed below the current step.
func Resume(savedStep, savedHighest int) *Engine {
	e := &Engine{current: clamp(savedStep), highest: clamp(savedHighest)}
	if e.highest < e.current {
		e.highest = e.current
	}
	return e
}

// Current returns the current step index.
func (e *Engine) Current() int { return e.current }

// CurrentStep returns the current step definition.
func (e *Engine) CurrentStep() Step { return Steps[e.current] }

// Highest returns the highest step index reached so far.
func (e *Engine) Highest() int { return e.highest }

// AtLast reports whether the engine sits on the final review step.
func (e *Engine) AtLast() bool { return e.current == len(Steps)-1 }

// Next advances one step, clamped to the last index, raising the high-water
// mark to at least the new position.
func (e *Engine) Next() {
	if e.current < len(Steps)-1 {
		e.current++
	}
	if e.highest < e.current {
		e.highest = e.current
	}
}

// Prev steps back one step, never below zero. The high-water mark is
// untouched so the user can return forward.
func (e *Engine) Prev() {
	if e.current > 0 {
		e.current--
	}
}

// Goto jumps directly to step n. Jumps past the high-water mark are
// rejected; revisiting any step up to it succeeds and leaves the mark
// unchanged.
func (e *Engine) Goto(n int) error {
	if n < 0 || n >= len(Steps) {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, n)
	}
	if n > e.highest {
		return fmt.Errorf("%w: %d > %d", ErrStepNotReached, n, e.highest)
	}
	e.current = n
	return nil
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n >= len(Steps) {
		return len(Steps) - 1
	}
	return n
}
