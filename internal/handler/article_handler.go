package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/univcloud/campus-services/internal/models"
	"github.com/univcloud/campus-services/internal/service"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
	"github.com/univcloud/campus-services/pkg/response"
)

// ArticleHandler handles article endpoints.
type ArticleHandler struct {
	service *service.ArticleService
}

// NewArticleHandler constructs an article handler.
func NewArticleHandler(svc *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: svc}
}

// List godoc
// @Summary List articles
// @Tags Articles
// @Produce json
// @Param faculty_id query string false "Filter by faculty"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Article
// @Router /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	var filter models.ArticleFilter
	filter.FacultyID = c.Query("faculty_id")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	articles, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, articles, total)
}

// Get godoc
// @Summary Get article by id
// @Tags Articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} response.ErrorBody
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article)
}

// Create godoc
// @Summary Publish article
// @Tags Articles
// @Accept json
// @Produce json
// @Param payload body service.CreateArticleRequest true "Article payload"
// @Success 201 {object} models.Article
// @Failure 400 {object} response.ErrorBody
// @Router /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var req service.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	article, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, article)
}

// Delete godoc
// @Summary Delete article
// @Tags Articles
// @Param id path string true "Article ID"
// @Success 204
// @Failure 404 {object} response.ErrorBody
// @Router /articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
