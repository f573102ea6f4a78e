package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/univcloud/campus-services/internal/models"
	"github.com/univcloud/campus-services/internal/service"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
	"github.com/univcloud/campus-services/pkg/response"
)

type tuitionService interface {
	List(ctx context.Context, filter models.TuitionFeeFilter) ([]models.TuitionFee, int, error)
	Get(ctx context.Context, id string) (*models.TuitionFee, error)
	Create(ctx context.Context, req service.CreateTuitionRequest) ([]models.TuitionFee, error)
	Pay(ctx context.Context, id string) (*models.TuitionFee, error)
	Receipt(ctx context.Context, id string) ([]byte, error)
}

// TuitionHandler handles tuition fee endpoints.
type TuitionHandler struct {
	service tuitionService
}

// NewTuitionHandler constructs a tuition handler.
func NewTuitionHandler(svc tuitionService) *TuitionHandler {
	return &TuitionHandler{service: svc}
}

// List godoc
// @Summary List tuition fees of a student
// @Tags TuitionFees
// @Produce json
// @Param student_id query int true "Student ID"
// @Param degree_id query int false "Filter by degree"
// @Param is_paid query bool false "Filter by payment state"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.TuitionFee
// @Failure 400 {object} response.ErrorBody
// @Router /tuition-fees [get]
func (h *TuitionHandler) List(c *gin.Context) {
	var filter models.TuitionFeeFilter
	if studentID, err := strconv.ParseInt(c.Query("student_id"), 10, 64); err == nil {
		filter.StudentID = studentID
	}
	if degreeID, err := strconv.ParseInt(c.Query("degree_id"), 10, 64); err == nil {
		filter.DegreeID = degreeID
	}
	if raw := c.Query("is_paid"); raw != "" {
		if isPaid, err := strconv.ParseBool(raw); err == nil {
			filter.IsPaid = &isPaid
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	fees, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, fees, total)
}

// Get godoc
// @Summary Get tuition fee by id
// @Tags TuitionFees
// @Produce json
// @Param id path string true "TuitionFee ID"
// @Success 200 {object} models.TuitionFee
// @Failure 404 {object} response.ErrorBody
// @Router /tuition-fees/{id} [get]
func (h *TuitionHandler) Get(c *gin.Context) {
	fee, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee)
}

// Create godoc
// @Summary Open the fee schedule for an enrollment
// @Tags TuitionFees
// @Accept json
// @Produce json
// @Param payload body service.CreateTuitionRequest true "Tuition payload"
// @Success 201 {array} models.TuitionFee
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /tuition-fees [post]
func (h *TuitionHandler) Create(c *gin.Context) {
	var req service.CreateTuitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	fees, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fees)
}

// Pay godoc
// @Summary Settle a tuition fee
// @Tags TuitionFees
// @Produce json
// @Param id path string true "TuitionFee ID"
// @Success 200 {object} models.TuitionFee
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /tuition-fees/{id}/pay [post]
func (h *TuitionHandler) Pay(c *gin.Context) {
	fee, err := h.service.Pay(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee)
}

// Receipt godoc
// @Summary Download the payment receipt PDF
// @Tags TuitionFees
// @Produce application/pdf
// @Param id path string true "TuitionFee ID"
// @Success 200 {file} binary
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /tuition-fees/{id}/receipt [get]
func (h *TuitionHandler) Receipt(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.service.Receipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.PDF(c, fmt.Sprintf("receipt-%s.pdf", id), doc)
}
