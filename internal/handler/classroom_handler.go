package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/univcloud/campus-services/internal/models"
	"github.com/univcloud/campus-services/internal/service"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
	"github.com/univcloud/campus-services/pkg/response"
)

type classroomService interface {
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	ListWithSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ClassroomWithSchedules, error)
	UpdateAvailability(ctx context.Context, id string, req service.UpdateClassroomRequest) (*models.Classroom, error)
}

type bookingService interface {
	Schedules(ctx context.Context, classroomID string) ([]models.Schedule, error)
	Reserve(ctx context.Context, classroomID string, req service.CreateScheduleRequest) (*models.Schedule, error)
}

// ClassroomHandler handles classroom endpoints.
type ClassroomHandler struct {
	classrooms classroomService
	bookings   bookingService
}

// NewClassroomHandler constructs a classroom handler.
func NewClassroomHandler(classrooms classroomService, bookings bookingService) *ClassroomHandler {
	return &ClassroomHandler{classrooms: classrooms, bookings: bookings}
}

// List godoc
// @Summary List classrooms of a faculty
// @Tags Classrooms
// @Produce json
// @Param faculty_id query int true "Faculty ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Classroom
// @Failure 400 {object} response.ErrorBody
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	var filter models.ClassroomFilter
	if facultyID, err := strconv.ParseInt(c.Query("faculty_id"), 10, 64); err == nil {
		filter.FacultyID = facultyID
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	classrooms, total, err := h.classrooms.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, classrooms, total)
}

// Schedules godoc
// @Summary List classrooms with their schedules
// @Tags Classrooms
// @Produce json
// @Param faculty_id query int true "Faculty ID"
// @Param course_edition_id query string false "Course edition ID"
// @Success 200 {array} models.ClassroomWithSchedules
// @Failure 400 {object} response.ErrorBody
// @Router /classrooms/schedules [get]
func (h *ClassroomHandler) Schedules(c *gin.Context) {
	facultyID, err := strconv.ParseInt(c.Query("faculty_id"), 10, 64)
	if err != nil || facultyID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "A faculty_id is needed to filter the Classrooms"))
		return
	}

	filter := models.ScheduleFilter{
		FacultyID:       facultyID,
		CourseEditionID: c.Query("course_edition_id"),
	}
	classrooms, err := h.classrooms.ListWithSchedules(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classrooms)
}

// RoomSchedules godoc
// @Summary List reservations of one classroom
// @Tags Classrooms
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 200 {array} models.Schedule
// @Failure 404 {object} response.ErrorBody
// @Router /classrooms/{id}/schedules [get]
func (h *ClassroomHandler) RoomSchedules(c *gin.Context) {
	schedules, err := h.bookings.Schedules(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules)
}

// Update godoc
// @Summary Toggle classroom availability
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Param payload body service.UpdateClassroomRequest true "Availability payload"
// @Success 200 {object} models.Classroom
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /classrooms/{id} [patch]
func (h *ClassroomHandler) Update(c *gin.Context) {
	var req service.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	classroom, err := h.classrooms.UpdateAvailability(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom)
}

// Book godoc
// @Summary Book a classroom for a course slot
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Param payload body service.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} models.Schedule
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /classrooms/{id}/book [post]
func (h *ClassroomHandler) Book(c *gin.Context) {
	var req service.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.bookings.Reserve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}
