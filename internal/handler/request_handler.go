package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"traveldesk/internal/errors"
	"traveldesk/internal/model"
	"traveldesk/internal/service"
)

const dateLayout = "2006-01-02"

// RequestHandler handles travel request endpoints.
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a new travel request handler.
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// SubmitRequest represents a new travel request submission.
type SubmitRequest struct {
	Destination   string `json:"destination" validate:"required"`
	StartDate     string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"required,datetime=2006-01-02"`
	EstimatedCost string `json:"estimated_cost" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
}

// SetStatusRequest represents a manager's status decision.
type SetStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=Approved Denied Settled"`
	Comment string `json:"comment"`
}

// Submit godoc
// @Summary Submit a travel request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRequest true "Travel request fields"
// @Success 201 {object} model.TravelRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /requests [post]
func (h *RequestHandler) Submit(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid start_date", Code: "VALIDATION_FAILED",
		})
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid end_date", Code: "VALIDATION_FAILED",
		})
	}
	cost, err := decimal.NewFromString(req.EstimatedCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "estimated_cost must be a number", Code: "VALIDATION_FAILED",
		})
	}

	created, err := h.requestService.Submit(c.Request().Context(), actor, service.SubmitRequestInput{
		Destination:   req.Destination,
		StartDate:     startDate,
		EndDate:       endDate,
		EstimatedCost: cost,
		Reason:        req.Reason,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, created)
}

// ListMine godoc
// @Summary List the caller's travel requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(Pending, Approved, Denied, Settled)
// @Success 200 {array} model.TravelRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /requests/mine [get]
func (h *RequestHandler) ListMine(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	status := model.Status(c.QueryParam("status"))
	requests, err := h.requestService.ListMine(c.Request().Context(), actor, status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, requests)
}

// ListAll godoc
// @Summary List all travel requests (manager)
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(Pending, Approved, Denied, Settled)
// @Success 200 {array} model.TravelRequest
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /requests [get]
func (h *RequestHandler) ListAll(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	status := model.Status(c.QueryParam("status"))
	requests, err := h.requestService.ListAll(c.Request().Context(), actor, status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, requests)
}

// Get godoc
// @Summary Get a travel request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} model.TravelRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request id", Code: "VALIDATION_FAILED",
		})
	}

	req, err := h.requestService.Get(c.Request().Context(), actor, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, req)
}

// SetStatus godoc
// @Summary Approve, deny or settle a travel request (manager)
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body SetStatusRequest true "New status and optional comment"
// @Success 200 {object} model.TravelRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /requests/{id}/status [post]
func (h *RequestHandler) SetStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request id", Code: "VALIDATION_FAILED",
		})
	}

	var req SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.requestService.SetStatus(c.Request().Context(), actor, id, model.Status(req.Status), req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, updated)
}
