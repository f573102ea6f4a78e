package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univcloud/campus-services/internal/models"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
)

type articleRepository interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
}

// CreateArticleRequest describes the payload for publishing an article.
type CreateArticleRequest struct {
	FacultyID string `json:"faculty_id" validate:"required"`
	Title     string `json:"title" validate:"required,max=30"`
	Content   string `json:"content" validate:"required"`
	Author    string `json:"author" validate:"required,max=30"`
}

// ArticleService coordinates article publication.
type ArticleService struct {
	repo      articleRepository
	faculties facultyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewArticleService instantiates ArticleService.
func NewArticleService(repo articleRepository, faculties facultyRepository, validate *validator.Validate, logger *zap.Logger) *ArticleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArticleService{repo: repo, faculties: faculties, validator: validate, logger: logger}
}

// List returns articles, optionally scoped to one faculty.
func (s *ArticleService) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list articles")
	}
	return articles, total, nil
}

// Get loads one article.
func (s *ArticleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Article not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load article")
	}
	return article, nil
}

// Create publishes an article under an existing faculty.
func (s *ArticleService) Create(ctx context.Context, req CreateArticleRequest) (*models.Article, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid article payload")
	}

	if _, err := s.faculties.FindByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}

	article := models.Article{
		FacultyID: req.FacultyID,
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
	}
	if err := s.repo.Create(ctx, &article); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create article")
	}
	return &article, nil
}

// Delete removes an article.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Article not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete article")
	}
	return nil
}
