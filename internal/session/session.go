// Package session tracks per-user multi-step input flows. The presentation
// layer drives the steps; this package only remembers where each user is and
// what they have entered so far.
package session

import (
	"sync"
	"time"
)

// Step identifies where a user is inside a guided flow.
type Step string

const (
	StepIdle Step = ""

	StepAwaitingGoalName   Step = "awaiting_goal_name"
	StepAwaitingGoalAmount Step = "awaiting_goal_amount"
	StepAwaitingGoalDate   Step = "awaiting_goal_date"

	StepAwaitingReportStart Step = "awaiting_report_start"
	StepAwaitingReportEnd   Step = "awaiting_report_end"

	StepAwaitingCategoryName Step = "awaiting_category_name"

	StepAwaitingBudgetCategory Step = "awaiting_budget_category"
	StepAwaitingBudgetAmount   Step = "awaiting_budget_amount"

	StepAwaitingAccountName    Step = "awaiting_account_name"
	StepAwaitingAccountBalance Step = "awaiting_account_balance"

	StepAwaitingBroadcast Step = "awaiting_broadcast"
)

// Valid reports whether s is one of the defined steps.
func (s Step) Valid() bool {
	switch s {
	case StepIdle,
		StepAwaitingGoalName, StepAwaitingGoalAmount, StepAwaitingGoalDate,
		StepAwaitingReportStart, StepAwaitingReportEnd,
		StepAwaitingCategoryName,
		StepAwaitingBudgetCategory, StepAwaitingBudgetAmount,
		StepAwaitingAccountName, StepAwaitingAccountBalance,
		StepAwaitingBroadcast:
		return true
	}
	return false
}

// InputKind classifies what a step expects next.
type InputKind int

const (
	InputNone InputKind = iota
	InputText
	InputAmount
	InputDate
)

// String names the input kind for API responses.
func (k InputKind) String() string {
	switch k {
	case InputText:
		return "text"
	case InputAmount:
		return "amount"
	case InputDate:
		return "date"
	default:
		return "none"
	}
}

// Expects returns the kind of input a step is waiting for.
func (s Step) Expects() InputKind {
	switch s {
	case StepIdle:
		return InputNone
	case StepAwaitingGoalAmount, StepAwaitingBudgetAmount, StepAwaitingAccountBalance:
		return InputAmount
	case StepAwaitingGoalDate, StepAwaitingReportStart, StepAwaitingReportEnd:
		return InputDate
	default:
		return InputText
	}
}

// GoalDraft accumulates goal creation input across steps.
type GoalDraft struct {
	Name   string
	Amount int64
}

// ReportDraft accumulates report range input across steps.
type ReportDraft struct {
	Start  time.Time
	Format string
}

// State is one user's position in a flow plus accumulated drafts.
type State struct {
	Step      Step
	Goal      GoalDraft
	Report    ReportDraft
	Category  string
	UpdatedAt time.Time
}

// Store holds flow state per user. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	states map[int64]State
	now    func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		states: make(map[int64]State),
		now:    time.Now,
	}
}

// Get returns the user's current state. Unknown users are idle.
func (s *Store) Get(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[userID]
}

// Set replaces the user's state and stamps it.
func (s *Store) Set(userID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state.UpdatedAt = s.now()
	s.states[userID] = state
}

// Advance moves the user to the next step, keeping accumulated drafts.
func (s *Store) Advance(userID int64, step Step) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.states[userID]
	state.Step = step
	state.UpdatedAt = s.now()
	s.states[userID] = state
	return state
}

// Clear resets the user to idle and drops all drafts.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// Expire drops states that have not been touched within ttl and returns how
// many were removed.
func (s *Store) Expire(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, state := range s.states {
		if state.UpdatedAt.Before(cutoff) {
			delete(s.states, id)
			removed++
		}
	}
	return removed
}
