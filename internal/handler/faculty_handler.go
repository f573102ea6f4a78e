package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/univcloud/campus-services/internal/service"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
	"github.com/univcloud/campus-services/pkg/response"
)

// FacultyHandler handles faculty endpoints.
type FacultyHandler struct {
	service *service.FacultyService
}

// NewFacultyHandler constructs a faculty handler.
func NewFacultyHandler(svc *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{service: svc}
}

// List godoc
// @Summary List faculties
// @Tags Faculties
// @Produce json
// @Success 200 {array} models.Faculty
// @Router /faculties [get]
func (h *FacultyHandler) List(c *gin.Context) {
	faculties, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculties)
}

// Get godoc
// @Summary Get faculty by id
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} models.Faculty
// @Failure 404 {object} response.ErrorBody
// @Router /faculties/{id} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	faculty, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty)
}

// Create godoc
// @Summary Create faculty
// @Tags Faculties
// @Accept json
// @Produce json
// @Param payload body service.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} models.Faculty
// @Failure 400 {object} response.ErrorBody
// @Router /faculties [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req service.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	faculty, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, faculty)
}

// Archive godoc
// @Summary Archive faculty
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 204
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /faculties/{id} [delete]
func (h *FacultyHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Certificate godoc
// @Summary Issue a faculty certificate PDF
// @Tags Faculties
// @Accept json
// @Produce application/pdf
// @Param payload body service.CreateCertificateRequest true "Certificate payload"
// @Success 200 {file} binary
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /certificates [post]
func (h *FacultyHandler) Certificate(c *gin.Context) {
	var req service.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	doc, err := h.service.Certificate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("certificate-%s.pdf", time.Now().UTC().Format("20060102"))
	response.PDF(c, filename, doc)
}
