package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"traveldesk/internal/errors"
	"traveldesk/internal/model"
	"traveldesk/internal/repository"
)

// SubmitRequestInput carries the fields of a new travel request.
type SubmitRequestInput struct {
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	EstimatedCost decimal.Decimal
	Reason        string
}

// RequestService is the travel request workflow: employees submit and list
// their own requests, managers list everything and drive status changes.
type RequestService interface {
	Submit(ctx context.Context, actor model.Actor, in SubmitRequestInput) (*model.TravelRequest, error)
	ListMine(ctx context.Context, actor model.Actor, status model.Status) ([]model.TravelRequest, error)
	ListAll(ctx context.Context, actor model.Actor, status model.Status) ([]model.TravelRequest, error)
	Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.TravelRequest, error)
	SetStatus(ctx context.Context, actor model.Actor, id uuid.UUID, newStatus model.Status, comment string) (*model.TravelRequest, error)
}

type requestService struct {
	requestRepo repository.TravelRequestRepository
}

// NewRequestService creates a new request workflow service.
func NewRequestService(requestRepo repository.TravelRequestRepository) RequestService {
	return &requestService{requestRepo: requestRepo}
}

// Submit validates the input and creates a new request owned by the actor.
// Every request starts out Pending.
func (s *requestService) Submit(ctx context.Context, actor model.Actor, in SubmitRequestInput) (*model.TravelRequest, error) {
	if err := validateSubmitInput(in); err != nil {
		return nil, err
	}

	req := &model.TravelRequest{
		RequesterID:   actor.ID,
		Destination:   in.Destination,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		EstimatedCost: in.EstimatedCost,
		Reason:        in.Reason,
		Status:        model.StatusPending,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create travel request: %w", err)
	}
	return req, nil
}

func validateSubmitInput(in SubmitRequestInput) error {
	if in.Destination == "" {
		return fmt.Errorf("%w: destination is required", errors.ErrValidation)
	}
	if in.Reason == "" {
		return fmt.Errorf("%w: reason is required", errors.ErrValidation)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", errors.ErrValidation)
	}
	if in.EndDate.Before(in.StartDate) {
		return fmt.Errorf("%w: end date is before start date", errors.ErrValidation)
	}
	if in.EstimatedCost.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: estimated cost must be positive", errors.ErrValidation)
	}
	return nil
}

// ListMine returns the actor's own requests, newest first, optionally
// filtered by status.
func (s *requestService) ListMine(ctx context.Context, actor model.Actor, status model.Status) ([]model.TravelRequest, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", errors.ErrValidation, status)
	}
	return s.requestRepo.ListByRequester(ctx, actor.ID, status)
}

// ListAll returns every request in the system, newest first. Manager only.
func (s *requestService) ListAll(ctx context.Context, actor model.Actor, status model.Status) ([]model.TravelRequest, error) {
	if !actor.IsManager() {
		return nil, errors.ErrManagerOnly
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", errors.ErrValidation, status)
	}
	return s.requestRepo.ListAll(ctx, status)
}

// Get returns a single request. Managers see any request; an employee only
// their own. Foreign requests surface as not found so employees cannot
// probe which ids exist.
func (s *requestService) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.TravelRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find travel request: %w", err)
	}
	if !actor.IsManager() && req.RequesterID != actor.ID {
		return nil, errors.ErrRequestNotFound
	}
	return req, nil
}

// SetStatus moves a request along the approval state machine and records the
// manager's comment. Only the edges Pending->Approved, Pending->Denied and
// Approved->Settled are legal; anything else leaves the record untouched.
func (s *requestService) SetStatus(ctx context.Context, actor model.Actor, id uuid.UUID, newStatus model.Status, comment string) (*model.TravelRequest, error) {
	if !actor.IsManager() {
		return nil, errors.ErrManagerOnly
	}
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", errors.ErrValidation, newStatus)
	}

	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find travel request: %w", err)
	}

	if !req.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", errors.ErrInvalidTransition, req.Status, newStatus)
	}

	req.Status = newStatus
	req.ManagerComment = comment
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("update travel request: %w", err)
	}
	return req, nil
}
