package domain

import "strings"

// SubmissionState is the moderation lifecycle state of a submission.
type SubmissionState string

const (
	SubmissionStateInProgress SubmissionState = "in_progress"
	SubmissionStatePending    SubmissionState = "pending"
	SubmissionStateAccepted   SubmissionState = "accepted"
	SubmissionStateRejected   SubmissionState = "rejected"
	SubmissionStateRemoved    SubmissionState = "removed"
)

func (s SubmissionState) String() string { return string(s) }

func (s SubmissionState) IsValid() bool {
	switch s {
	case SubmissionStateInProgress, SubmissionStatePending, SubmissionStateAccepted,
		SubmissionStateRejected, SubmissionStateRemoved:
		return true
	}
	return false
}

// AllSubmissionStates lists every state in lifecycle order.
func AllSubmissionStates() []SubmissionState {
	return []SubmissionState{
		SubmissionStateInProgress,
		SubmissionStatePending,
		SubmissionStateAccepted,
		SubmissionStateRejected,
		SubmissionStateRemoved,
	}
}

// Trigger is a named action that can be requested against a submission.
type Trigger string

const (
	TriggerSubmit   Trigger = "submit"
	TriggerAccept   Trigger = "accept"
	TriggerReject   Trigger = "reject"
	TriggerCancel   Trigger = "cancel"
	TriggerRemove   Trigger = "remove"
	TriggerResubmit Trigger = "resubmit"
)

func (t Trigger) String() string { return string(t) }

func (t Trigger) IsValid() bool {
	switch t {
	case TriggerSubmit, TriggerAccept, TriggerReject, TriggerCancel, TriggerRemove, TriggerResubmit:
		return true
	}
	return false
}

// AllTriggers lists every trigger.
func AllTriggers() []Trigger {
	return []Trigger{
		TriggerSubmit,
		TriggerAccept,
		TriggerReject,
		TriggerCancel,
		TriggerRemove,
		TriggerResubmit,
	}
}

// ParseTrigger maps an input name to a Trigger. Names are case-insensitive
// and surrounding whitespace is ignored.
func ParseTrigger(name string) (Trigger, error) {
	t := Trigger(strings.ToLower(strings.TrimSpace(name)))
	if !t.IsValid() {
		return "", NewValidationError("trigger", "unknown trigger "+quote(name))
	}
	return t, nil
}

// ModerationMode is the workflow a collection applies to its submissions.
type ModerationMode string

const (
	ModerationModeUnmoderated ModerationMode = "unmoderated"
	ModerationModePre         ModerationMode = "pre-moderation"
	ModerationModeHybrid      ModerationMode = "hybrid-moderation"
)

func (m ModerationMode) String() string { return string(m) }

func (m ModerationMode) IsValid() bool {
	switch m {
	case ModerationModeUnmoderated, ModerationModePre, ModerationModeHybrid:
		return true
	}
	return false
}

// IsModerated reports whether submissions pass through moderator review.
func (m ModerationMode) IsModerated() bool {
	return m == ModerationModePre || m == ModerationModeHybrid
}

// Permission is a contributor's permission level on an artifact.
// Levels are ordered: admin implies write implies read.
type Permission string

const (
	PermissionNone  Permission = ""
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
	PermissionAdmin Permission = "admin"
)

func (p Permission) String() string { return string(p) }

func (p Permission) IsValid() bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionAdmin:
		return true
	}
	return false
}

func (p Permission) level() int {
	switch p {
	case PermissionRead:
		return 1
	case PermissionWrite:
		return 2
	case PermissionAdmin:
		return 3
	}
	return 0
}

// AtLeast reports whether p grants at least the other level.
func (p Permission) AtLeast(other Permission) bool {
	return p.level() >= other.level()
}

// Role is a capability a transition may require.
type Role string

const (
	RoleContributor Role = "contributor"
	RoleAdmin       Role = "admin"
	RoleModerator   Role = "moderator"
)

func (r Role) String() string { return string(r) }

func quote(s string) string {
	return "'" + s + "'"
}
