package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransitionEvent describes a committed transition for notification purposes.
type TransitionEvent struct {
	Submission     Submission
	Collection     Collection
	Trigger        Trigger
	FromState      SubmissionState
	State          SubmissionState
	ActorID        uuid.UUID
	ActorModerator bool
	Comment        string
	OccurredAt     time.Time
}

// OutboxStatus is the delivery status of a notification outbox entry.
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusDelivered OutboxStatus = "delivered"
	OutboxStatusFailed    OutboxStatus = "failed"
)

func (s OutboxStatus) String() string { return string(s) }

func (s OutboxStatus) IsValid() bool {
	switch s {
	case OutboxStatusPending, OutboxStatusDelivered, OutboxStatusFailed:
		return true
	}
	return false
}

// OutboxEntry is a notification event waiting to be handed to the delivery webhook.
type OutboxEntry struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	CollectionID uuid.UUID
	Trigger      Trigger
	State        SubmissionState
	ActorID      uuid.UUID
	Recipients   []uuid.UUID
	Status       OutboxStatus
	Attempts     int
	LastError    *string
	CreatedAt    time.Time
	DeliveredAt  *time.Time
}
