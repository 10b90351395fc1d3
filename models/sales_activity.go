package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityStatus string

const (
	ActivityPending   ActivityStatus = "pending"
	ActivityCompleted ActivityStatus = "completed"
	ActivityCancelled ActivityStatus = "cancelled"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityPending, ActivityCompleted, ActivityCancelled:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivityCall     ActivityType = "call"
	ActivityEmail    ActivityType = "email"
	ActivityMeeting  ActivityType = "meeting"
	ActivityQuote    ActivityType = "quote"
	ActivityFollowUp ActivityType = "follow_up"
	ActivityNote     ActivityType = "note"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityQuote, ActivityFollowUp, ActivityNote:
		return true
	}
	return false
}

type ActivityPriority string

const (
	PriorityLow    ActivityPriority = "low"
	PriorityMedium ActivityPriority = "medium"
	PriorityHigh   ActivityPriority = "high"
)

func (p ActivityPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// activityTransitions is the legal state machine for an activity's lifecycle.
// Completed and cancelled are terminal states.
var activityTransitions = map[ActivityStatus][]ActivityStatus{
	ActivityPending:   {ActivityCompleted, ActivityCancelled},
	ActivityCompleted: {},
	ActivityCancelled: {},
}

// CanTransitionTo reports whether the status may legally move to the target.
func (s ActivityStatus) CanTransitionTo(to ActivityStatus) bool {
	for _, next := range activityTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// SalesActivity is a follow-up task authored by a user, optionally tied to a
// customer. CompletedDate is non-nil exactly when Status is completed.
type SalesActivity struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`

	Title        string           `gorm:"not null" json:"title"`
	Description  string           `json:"description"`
	ActivityType ActivityType     `gorm:"type:varchar(20);not null" json:"activity_type"`
	Priority     ActivityPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status       ActivityStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	ScheduledDate *time.Time `json:"scheduled_date"`
	CompletedDate *time.Time `json:"completed_date"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *SalesActivity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = ActivityPending
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	return
}

// MarkCompleted moves a pending activity to completed and stamps the
// completion time from the server clock. Calling it on an already completed
// activity is a no-op; cancelled activities are terminal and return
// ErrConflict.
func (a *SalesActivity) MarkCompleted(now time.Time) error {
	if a.Status == ActivityCompleted {
		return nil
	}
	if !a.Status.CanTransitionTo(ActivityCompleted) {
		return ErrConflict
	}
	a.Status = ActivityCompleted
	a.CompletedDate = &now
	return nil
}
