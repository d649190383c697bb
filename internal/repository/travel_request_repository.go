package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"traveldesk/internal/model"
)

// TravelRequestRepository defines travel request persistence operations.
// There is deliberately no Delete: requests are kept as approval history.
type TravelRequestRepository interface {
	Create(ctx context.Context, req *model.TravelRequest) error
	Update(ctx context.Context, req *model.TravelRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error)
	ListByRequester(ctx context.Context, requesterID uint, status model.Status) ([]model.TravelRequest, error)
	ListAll(ctx context.Context, status model.Status) ([]model.TravelRequest, error)
}

type travelRequestRepository struct {
	db *gorm.DB
}

// NewTravelRequestRepository creates a new travel request repository.
func NewTravelRequestRepository(db *gorm.DB) TravelRequestRepository {
	return &travelRequestRepository{db: db}
}

// Create creates a new travel request.
func (r *travelRequestRepository) Create(ctx context.Context, req *model.TravelRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// Update updates an existing travel request.
func (r *travelRequestRepository) Update(ctx context.Context, req *model.TravelRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// FindByID finds a travel request by ID.
func (r *travelRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error) {
	var req model.TravelRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByRequester lists all requests owned by requesterID, newest first.
// An empty status means no filter.
func (r *travelRequestRepository) ListByRequester(ctx context.Context, requesterID uint, status model.Status) ([]model.TravelRequest, error) {
	q := r.db.WithContext(ctx).Where("requester_id = ?", requesterID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var reqs []model.TravelRequest
	if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListAll lists every request in the system, newest first. An empty status
// means no filter.
func (r *travelRequestRepository) ListAll(ctx context.Context, status model.Status) ([]model.TravelRequest, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var reqs []model.TravelRequest
	if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}
