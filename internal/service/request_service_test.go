package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"traveldesk/internal/errors"
	"traveldesk/internal/model"
)

// MockTravelRequestRepository is a mock implementation of TravelRequestRepository.
type MockTravelRequestRepository struct {
	mock.Mock
}

func (m *MockTravelRequestRepository) Create(ctx context.Context, req *model.TravelRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockTravelRequestRepository) Update(ctx context.Context, req *model.TravelRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockTravelRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TravelRequest), args.Error(1)
}

func (m *MockTravelRequestRepository) ListByRequester(ctx context.Context, requesterID uint, status model.Status) ([]model.TravelRequest, error) {
	args := m.Called(ctx, requesterID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TravelRequest), args.Error(1)
}

func (m *MockTravelRequestRepository) ListAll(ctx context.Context, status model.Status) ([]model.TravelRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TravelRequest), args.Error(1)
}

var (
	employeeActor = model.Actor{ID: 7, Email: "a@x.com", Role: model.RoleEmployee}
	managerActor  = model.Actor{ID: 1, Email: "manager@example.com", Role: model.RoleManager}
)

func validInput() SubmitRequestInput {
	return SubmitRequestInput{
		Destination:   "Austin",
		StartDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		EstimatedCost: decimal.NewFromInt(600),
		Reason:        "Domestic Sales Training",
	}
}

func TestRequestService_Submit(t *testing.T) {
	t.Run("creates pending request owned by submitter", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.TravelRequest")).Return(nil)

		svc := NewRequestService(mockRepo)
		created, err := svc.Submit(context.Background(), employeeActor, validInput())

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, model.StatusPending, created.Status)
		assert.Equal(t, employeeActor.ID, created.RequesterID)
		assert.Equal(t, "Austin", created.Destination)
		mockRepo.AssertExpectations(t)
	})

	validationCases := []struct {
		name   string
		mutate func(*SubmitRequestInput)
	}{
		{"missing destination", func(in *SubmitRequestInput) { in.Destination = "" }},
		{"missing reason", func(in *SubmitRequestInput) { in.Reason = "" }},
		{"zero start date", func(in *SubmitRequestInput) { in.StartDate = time.Time{} }},
		{"end before start", func(in *SubmitRequestInput) {
			in.EndDate = in.StartDate.AddDate(0, 0, -1)
		}},
		{"non-positive cost", func(in *SubmitRequestInput) { in.EstimatedCost = decimal.Zero }},
	}

	for _, tt := range validationCases {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTravelRequestRepository)
			svc := NewRequestService(mockRepo)

			in := validInput()
			tt.mutate(&in)

			created, err := svc.Submit(context.Background(), employeeActor, in)

			assert.ErrorIs(t, err, errors.ErrValidation)
			assert.Nil(t, created)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRequestService_ListMine(t *testing.T) {
	t.Run("queries only the caller's requests", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		mine := []model.TravelRequest{{RequesterID: employeeActor.ID, Destination: "Paris, France"}}
		mockRepo.On("ListByRequester", mock.Anything, employeeActor.ID, model.Status("")).Return(mine, nil)

		svc := NewRequestService(mockRepo)
		got, err := svc.ListMine(context.Background(), employeeActor, "")

		assert.NoError(t, err)
		assert.Equal(t, mine, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("passes status filter through", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		mockRepo.On("ListByRequester", mock.Anything, employeeActor.ID, model.StatusApproved).Return([]model.TravelRequest{}, nil)

		svc := NewRequestService(mockRepo)
		_, err := svc.ListMine(context.Background(), employeeActor, model.StatusApproved)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		svc := NewRequestService(mockRepo)

		_, err := svc.ListMine(context.Background(), employeeActor, model.Status("Rejected"))

		assert.ErrorIs(t, err, errors.ErrValidation)
		mockRepo.AssertNotCalled(t, "ListByRequester", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRequestService_ListAll(t *testing.T) {
	t.Run("manager sees every request", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		all := []model.TravelRequest{
			{RequesterID: 7, Destination: "Paris, France"},
			{RequesterID: 8, Destination: "Tokyo, Japan"},
		}
		mockRepo.On("ListAll", mock.Anything, model.Status("")).Return(all, nil)

		svc := NewRequestService(mockRepo)
		got, err := svc.ListAll(context.Background(), managerActor, "")

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("employee is rejected", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		svc := NewRequestService(mockRepo)

		got, err := svc.ListAll(context.Background(), employeeActor, "")

		assert.ErrorIs(t, err, errors.ErrManagerOnly)
		assert.Nil(t, got)
		mockRepo.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
	})
}

func TestRequestService_Get(t *testing.T) {
	reqID := uuid.New()

	t.Run("owner reads own request", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		mockRepo.On("FindByID", mock.Anything, reqID).Return(&model.TravelRequest{ID: reqID, RequesterID: employeeActor.ID}, nil)

		svc := NewRequestService(mockRepo)
		got, err := svc.Get(context.Background(), employeeActor, reqID)

		assert.NoError(t, err)
		assert.Equal(t, reqID, got.ID)
	})

	t.Run("foreign request reads as not found", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		mockRepo.On("FindByID", mock.Anything, reqID).Return(&model.TravelRequest{ID: reqID, RequesterID: 99}, nil)

		svc := NewRequestService(mockRepo)
		got, err := svc.Get(context.Background(), employeeActor, reqID)

		assert.ErrorIs(t, err, errors.ErrRequestNotFound)
		assert.Nil(t, got)
	})

	t.Run("manager reads any request", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		mockRepo.On("FindByID", mock.Anything, reqID).Return(&model.TravelRequest{ID: reqID, RequesterID: 99}, nil)

		svc := NewRequestService(mockRepo)
		got, err := svc.Get(context.Background(), managerActor, reqID)

		assert.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		mockRepo.On("FindByID", mock.Anything, reqID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewRequestService(mockRepo)
		got, err := svc.Get(context.Background(), managerActor, reqID)

		assert.ErrorIs(t, err, errors.ErrRequestNotFound)
		assert.Nil(t, got)
	})
}

func TestRequestService_SetStatus(t *testing.T) {
	reqID := uuid.New()

	t.Run("non-manager is rejected without touching the record", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		svc := NewRequestService(mockRepo)

		got, err := svc.SetStatus(context.Background(), employeeActor, reqID, model.StatusApproved, "")

		assert.ErrorIs(t, err, errors.ErrManagerOnly)
		assert.Nil(t, got)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		mockRepo.On("FindByID", mock.Anything, reqID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewRequestService(mockRepo)
		got, err := svc.SetStatus(context.Background(), managerActor, reqID, model.StatusApproved, "")

		assert.ErrorIs(t, err, errors.ErrRequestNotFound)
		assert.Nil(t, got)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	transitionCases := []struct {
		name    string
		from    model.Status
		to      model.Status
		allowed bool
	}{
		{"pending to approved", model.StatusPending, model.StatusApproved, true},
		{"pending to denied", model.StatusPending, model.StatusDenied, true},
		{"approved to settled", model.StatusApproved, model.StatusSettled, true},
		{"pending to settled", model.StatusPending, model.StatusSettled, false},
		{"denied to approved", model.StatusDenied, model.StatusApproved, false},
		{"settled to approved", model.StatusSettled, model.StatusApproved, false},
		{"approved to denied", model.StatusApproved, model.StatusDenied, false},
	}

	for _, tt := range transitionCases {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTravelRequestRepository)
			stored := &model.TravelRequest{ID: reqID, RequesterID: 7, Status: tt.from}
			mockRepo.On("FindByID", mock.Anything, reqID).Return(stored, nil)
			if tt.allowed {
				mockRepo.On("Update", mock.Anything, stored).Return(nil)
			}

			svc := NewRequestService(mockRepo)
			got, err := svc.SetStatus(context.Background(), managerActor, reqID, tt.to, "reviewed")

			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, got.Status)
				assert.Equal(t, "reviewed", got.ManagerComment)
			} else {
				assert.ErrorIs(t, err, errors.ErrInvalidTransition)
				assert.Nil(t, got)
				assert.Equal(t, tt.from, stored.Status, "stored status must be unchanged")
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("approve then deny fails", func(t *testing.T) {
		mockRepo := new(MockTravelRequestRepository)
		stored := &model.TravelRequest{ID: reqID, RequesterID: 7, Status: model.StatusPending}
		mockRepo.On("FindByID", mock.Anything, reqID).Return(stored, nil)
		mockRepo.On("Update", mock.Anything, stored).Return(nil).Once()

		svc := NewRequestService(mockRepo)

		approved, err := svc.SetStatus(context.Background(), managerActor, reqID, model.StatusApproved, "ok")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusApproved, approved.Status)
		assert.Equal(t, "ok", approved.ManagerComment)

		denied, err := svc.SetStatus(context.Background(), managerActor, reqID, model.StatusDenied, "changed my mind")
		assert.ErrorIs(t, err, errors.ErrInvalidTransition)
		assert.Nil(t, denied)
		assert.Equal(t, model.StatusApproved, stored.Status)
	})
}
