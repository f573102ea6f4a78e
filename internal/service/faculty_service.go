package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univcloud/campus-services/internal/events"
	"github.com/univcloud/campus-services/internal/models"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
	"github.com/univcloud/campus-services/pkg/export"
)

type facultyRepository interface {
	List(ctx context.Context) ([]models.Faculty, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, faculty *models.Faculty) error
	Archive(ctx context.Context, id string) error
}

// CreateLocationRequest holds the optional address of a new faculty.
type CreateLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Country   string  `json:"country" validate:"required,iso3166_1_alpha2"`
	Address   string  `json:"address" validate:"required,max=250"`
}

// CreateFacultyRequest describes the payload for creating a faculty.
type CreateFacultyRequest struct {
	Name     string                 `json:"name" validate:"required,max=30"`
	Location *CreateLocationRequest `json:"location,omitempty" validate:"omitempty"`
}

// CreateCertificateRequest describes the payload for issuing an enrollment
// certificate.
type CreateCertificateRequest struct {
	FacultyID   string `json:"faculty_id" validate:"required"`
	StudentName string `json:"student_name" validate:"required,max=60"`
}

// FacultyService coordinates faculty lifecycle and certificate issuance.
type FacultyService struct {
	repo      facultyRepository
	events    eventPublisher
	renderer  *export.PDFRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFacultyService instantiates FacultyService.
func NewFacultyService(repo facultyRepository, publisher eventPublisher, renderer *export.PDFRenderer, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = export.NewPDFRenderer()
	}
	return &FacultyService{
		repo:      repo,
		events:    publisher,
		renderer:  renderer,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns all faculties.
func (s *FacultyService) List(ctx context.Context) ([]models.Faculty, error) {
	faculties, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculties")
	}
	return faculties, nil
}

// Get loads one faculty.
func (s *FacultyService) Get(ctx context.Context, id string) (*models.Faculty, error) {
	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	return faculty, nil
}

// Create stores a new active faculty.
func (s *FacultyService) Create(ctx context.Context, req CreateFacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	faculty := models.Faculty{
		Name:     req.Name,
		IsActive: true,
	}
	if req.Location != nil {
		faculty.Location = &models.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Country:   req.Location.Country,
			Address:   req.Location.Address,
		}
	}

	if err := s.repo.Create(ctx, &faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}
	return &faculty, nil
}

// Archive marks a faculty inactive instead of deleting it and emits an event
// for downstream consumers.
func (s *FacultyService) Archive(ctx context.Context, id string) error {
	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Faculty not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}

	if !faculty.IsActive {
		return appErrors.ErrFacultyArchived
	}

	if err := s.repo.Archive(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive faculty")
	}

	if s.events != nil {
		event := events.Event{Type: events.TypeFacultyArchived, Payload: map[string]string{"faculty_id": id}}
		if err := s.events.Publish(ctx, id, event); err != nil {
			s.logger.Warn("failed to publish faculty archived event", zap.String("faculty_id", id), zap.Error(err))
		}
	}
	return nil
}

// Certificate issues an enrollment certificate PDF for a student of an active
// faculty.
func (s *FacultyService) Certificate(ctx context.Context, req CreateCertificateRequest) ([]byte, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid certificate payload")
	}

	faculty, err := s.Get(ctx, req.FacultyID)
	if err != nil {
		return nil, err
	}
	if !faculty.IsActive {
		return nil, appErrors.ErrFacultyArchived
	}

	issued := s.now().UTC()
	doc, err := s.renderer.Certificate(export.CertificateData{
		SerialNumber: certificateSerial(faculty.ID, issued),
		FacultyName:  faculty.Name,
		StudentName:  req.StudentName,
		IssuedAt:     issued,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render certificate")
	}
	return doc, nil
}

func certificateSerial(facultyID string, issued time.Time) string {
	suffix := facultyID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return issued.Format("20060102") + "-" + suffix
}
