package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/univcloud/campus-services/internal/models"
)

// ArticleRepository provides persistence for faculty articles.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// List returns articles with optional faculty filtering and pagination.
func (r *ArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	base := "FROM articles WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.FacultyID != "" {
		conditions = append(conditions, fmt.Sprintf("faculty_id = $%d", len(args)+1))
		args = append(args, filter.FacultyID)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, faculty_id, title, content, author, created_at %s ORDER BY created_at DESC LIMIT %d OFFSET %d", base, size, offset)
	var articles []models.Article
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	return articles, total, nil
}

// FindByID loads an article by id.
func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*models.Article, error) {
	const query = `SELECT id, faculty_id, title, content, author, created_at FROM articles WHERE id = $1`
	var article models.Article
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		return nil, err
	}
	return &article, nil
}

// Create stores a new article.
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO articles (id, faculty_id, title, content, author, created_at) VALUES (:id, :faculty_id, :title, :content, :author, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, article); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// Delete removes an article by id.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNoRows
	}
	return nil
}
