// Package workflow holds the collection submission state machine as plain
// data: one transition table per moderation mode, a guard that checks the
// acting principal's roles, and Decide, which combines the two.
package workflow

import (
	"fmt"
	"strings"

	"github.com/osfio/collections-moderation/internal/domain"
)

// Requirement lists the roles that may fire a transition. A principal
// holding any one of them qualifies.
type Requirement struct {
	AnyOf []domain.Role

	// ModeratorContributor also admits a moderator who holds any
	// contributor permission on the artifact.
	ModeratorContributor bool
}

// SatisfiedBy reports whether p meets the requirement.
func (r Requirement) SatisfiedBy(p domain.Principal) bool {
	for _, role := range r.AnyOf {
		if p.Has(role) {
			return true
		}
	}
	return r.ModeratorContributor && p.Moderator && p.IsContributor()
}

// String renders the requirement for error messages, e.g. "moderator or admin".
func (r Requirement) String() string {
	parts := make([]string, 0, len(r.AnyOf)+1)
	for _, role := range r.AnyOf {
		parts = append(parts, role.String())
	}
	if r.ModeratorContributor {
		parts = append(parts, "moderator who is also a contributor")
	}
	return strings.Join(parts, " or ")
}

// Transition is one row of a transition table.
type Transition struct {
	From    domain.SubmissionState
	Trigger domain.Trigger
	To      domain.SubmissionState

	// Shortcut replaces To when the principal is a moderator who is also a
	// contributor on the artifact. Empty means no shortcut.
	Shortcut domain.SubmissionState

	Requires Requirement
}

// Destination returns the state the transition leads to for p.
func (tr Transition) Destination(p domain.Principal) domain.SubmissionState {
	if tr.Shortcut != "" && p.Moderator && p.IsContributor() {
		return tr.Shortcut
	}
	return tr.To
}

type rowKey struct {
	from    domain.SubmissionState
	trigger domain.Trigger
}

// Table is the immutable transition table of one moderation mode.
type Table struct {
	mode    domain.ModerationMode
	rows    map[rowKey]Transition
	byTrig  map[domain.Trigger]Requirement
	ordered []Transition
}

func newTable(mode domain.ModerationMode, rows ...Transition) *Table {
	t := &Table{
		mode:   mode,
		rows:   make(map[rowKey]Transition, len(rows)),
		byTrig: make(map[domain.Trigger]Requirement, len(rows)),
	}
	for _, r := range rows {
		k := rowKey{from: r.From, trigger: r.Trigger}
		if _, dup := t.rows[k]; dup {
			panic(fmt.Sprintf("workflow: duplicate row %s/%s in %s table", r.From, r.Trigger, mode))
		}
		if _, seen := t.byTrig[r.Trigger]; seen {
			panic(fmt.Sprintf("workflow: trigger %s has more than one row in %s table", r.Trigger, mode))
		}
		t.rows[k] = r
		t.byTrig[r.Trigger] = r.Requires
		t.ordered = append(t.ordered, r)
	}
	return t
}

var (
	anyContributor   = Requirement{AnyOf: []domain.Role{domain.RoleContributor}}
	contributorOrMod = Requirement{AnyOf: []domain.Role{domain.RoleContributor, domain.RoleModerator}}
	moderatorOnly    = Requirement{AnyOf: []domain.Role{domain.RoleModerator}}
	adminOnly        = Requirement{AnyOf: []domain.Role{domain.RoleAdmin}}
	moderatorOrAdmin = Requirement{AnyOf: []domain.Role{domain.RoleModerator, domain.RoleAdmin}}
)

var tables = map[domain.ModerationMode]*Table{
	domain.ModerationModeUnmoderated: newTable(domain.ModerationModeUnmoderated,
		Transition{From: domain.SubmissionStateInProgress, Trigger: domain.TriggerSubmit, To: domain.SubmissionStateAccepted, Requires: anyContributor},
		Transition{From: domain.SubmissionStateAccepted, Trigger: domain.TriggerRemove, To: domain.SubmissionStateRemoved, Requires: moderatorOrAdmin},
		Transition{From: domain.SubmissionStateRemoved, Trigger: domain.TriggerResubmit, To: domain.SubmissionStateAccepted, Requires: adminOnly},
	),
	domain.ModerationModePre: newTable(domain.ModerationModePre,
		Transition{From: domain.SubmissionStateInProgress, Trigger: domain.TriggerSubmit, To: domain.SubmissionStatePending, Requires: contributorOrMod},
		Transition{From: domain.SubmissionStatePending, Trigger: domain.TriggerAccept, To: domain.SubmissionStateAccepted, Requires: moderatorOnly},
		Transition{From: domain.SubmissionStatePending, Trigger: domain.TriggerReject, To: domain.SubmissionStateRejected, Requires: moderatorOnly},
		Transition{From: domain.SubmissionStatePending, Trigger: domain.TriggerCancel, To: domain.SubmissionStateInProgress, Requires: adminOnly},
		Transition{From: domain.SubmissionStateAccepted, Trigger: domain.TriggerRemove, To: domain.SubmissionStateRemoved, Requires: moderatorOrAdmin},
		Transition{From: domain.SubmissionStateRemoved, Trigger: domain.TriggerResubmit, To: domain.SubmissionStatePending, Requires: adminOnly},
	),
	domain.ModerationModeHybrid: newTable(domain.ModerationModeHybrid,
		Transition{From: domain.SubmissionStateInProgress, Trigger: domain.TriggerSubmit, To: domain.SubmissionStatePending, Shortcut: domain.SubmissionStateAccepted, Requires: contributorOrMod},
		Transition{From: domain.SubmissionStatePending, Trigger: domain.TriggerAccept, To: domain.SubmissionStateAccepted, Requires: moderatorOnly},
		Transition{From: domain.SubmissionStatePending, Trigger: domain.TriggerReject, To: domain.SubmissionStateRejected, Requires: moderatorOnly},
		Transition{From: domain.SubmissionStatePending, Trigger: domain.TriggerCancel, To: domain.SubmissionStateInProgress, Requires: adminOnly},
		Transition{From: domain.SubmissionStateAccepted, Trigger: domain.TriggerRemove, To: domain.SubmissionStateRemoved, Requires: moderatorOrAdmin},
		Transition{From: domain.SubmissionStateRemoved, Trigger: domain.TriggerResubmit, To: domain.SubmissionStatePending, Shortcut: domain.SubmissionStateAccepted,
			Requires: Requirement{AnyOf: []domain.Role{domain.RoleAdmin}, ModeratorContributor: true}},
	),
}

// For returns the transition table of a moderation mode.
func For(mode domain.ModerationMode) (*Table, error) {
	t, ok := tables[mode]
	if !ok {
		return nil, fmt.Errorf("moderation mode %q: %w", mode, domain.ErrValidation)
	}
	return t, nil
}

// Mode returns the moderation mode the table belongs to.
func (t *Table) Mode() domain.ModerationMode { return t.mode }

// Lookup returns the row for (from, trigger).
func (t *Table) Lookup(from domain.SubmissionState, trigger domain.Trigger) (Transition, bool) {
	tr, ok := t.rows[rowKey{from: from, trigger: trigger}]
	return tr, ok
}

// Requirement returns the role requirement of a trigger. ok is false when
// the trigger does not exist in this workflow at all.
func (t *Table) Requirement(trigger domain.Trigger) (req Requirement, ok bool) {
	req, ok = t.byTrig[trigger]
	return req, ok
}

// ValidTriggers lists the triggers that have a row for the given state,
// in table order.
func (t *Table) ValidTriggers(from domain.SubmissionState) []domain.Trigger {
	var out []domain.Trigger
	for _, tr := range t.ordered {
		if tr.From == from {
			out = append(out, tr.Trigger)
		}
	}
	return out
}

// Transitions returns a copy of all rows in table order.
func (t *Table) Transitions() []Transition {
	out := make([]Transition, len(t.ordered))
	copy(out, t.ordered)
	return out
}
