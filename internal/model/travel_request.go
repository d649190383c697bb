package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status represents the review state of a travel request.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusDenied   Status = "Denied"
	StatusSettled  Status = "Settled"
)

// transitions lists every legal status edge. A request starts Pending, a
// manager approves or denies it, and an approved request is settled once the
// trip is reimbursed. Denied and Settled have no outgoing edges.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusDenied},
	StatusApproved: {StatusSettled},
	StatusDenied:   {},
	StatusSettled:  {},
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// TravelRequest represents an employee's request to travel on company
// business. The requester is fixed at creation and records are never
// deleted, so the table doubles as the approval history.
type TravelRequest struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	RequesterID    uint            `json:"requester_id" gorm:"not null;index"`
	Destination    string          `json:"destination" gorm:"size:200;not null"`
	StartDate      time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate        time.Time       `json:"end_date" gorm:"type:date;not null"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost" gorm:"type:decimal(12,2);not null"`
	Reason         string          `json:"reason" gorm:"type:text;not null"`
	Status         Status          `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	ManagerComment string          `json:"manager_comment,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Requester User `json:"-" gorm:"foreignKey:RequesterID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *TravelRequest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
