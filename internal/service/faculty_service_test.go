package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univcloud/campus-services/internal/events"
	"github.com/univcloud/campus-services/internal/models"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
)

type facultyRepoStub struct {
	faculties map[string]*models.Faculty
	archived  []string
}

func (s *facultyRepoStub) List(ctx context.Context) ([]models.Faculty, error) {
	out := make([]models.Faculty, 0, len(s.faculties))
	for _, f := range s.faculties {
		out = append(out, *f)
	}
	return out, nil
}

func (s *facultyRepoStub) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	f, ok := s.faculties[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *f
	return &copied, nil
}

func (s *facultyRepoStub) Create(ctx context.Context, faculty *models.Faculty) error {
	faculty.ID = "fac-new"
	s.faculties[faculty.ID] = faculty
	return nil
}

func (s *facultyRepoStub) Archive(ctx context.Context, id string) error {
	f, ok := s.faculties[id]
	if !ok {
		return sql.ErrNoRows
	}
	f.IsActive = false
	s.archived = append(s.archived, id)
	return nil
}

func newFacultyFixture() (*FacultyService, *facultyRepoStub, *publisherStub) {
	repo := &facultyRepoStub{faculties: map[string]*models.Faculty{
		"fac-1": {ID: "fac-1", Name: "Engineering", IsActive: true},
		"fac-2": {ID: "fac-2", Name: "Letters", IsActive: false},
	}}
	pub := &publisherStub{}
	return NewFacultyService(repo, pub, nil, nil, nil), repo, pub
}

func TestFacultyCreate(t *testing.T) {
	svc, repo, _ := newFacultyFixture()

	faculty, err := svc.Create(context.Background(), CreateFacultyRequest{
		Name: "Medicine",
		Location: &CreateLocationRequest{
			Latitude:  45.07,
			Longitude: 7.69,
			Country:   "IT",
			Address:   "Corso Duca degli Abruzzi 24",
		},
	})
	require.NoError(t, err)
	assert.True(t, faculty.IsActive)
	require.NotNil(t, faculty.Location)
	assert.Equal(t, "IT", faculty.Location.Country)
	assert.Contains(t, repo.faculties, "fac-new")
}

func TestFacultyCreateRejectsBadCountry(t *testing.T) {
	svc, _, _ := newFacultyFixture()

	_, err := svc.Create(context.Background(), CreateFacultyRequest{
		Name: "Medicine",
		Location: &CreateLocationRequest{
			Country: "Italy",
			Address: "somewhere",
		},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestFacultyArchive(t *testing.T) {
	svc, repo, pub := newFacultyFixture()

	require.NoError(t, svc.Archive(context.Background(), "fac-1"))
	assert.False(t, repo.faculties["fac-1"].IsActive)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeFacultyArchived, pub.events[0].Type)
	assert.Equal(t, "fac-1", pub.keys[0])
}

func TestFacultyArchiveTwiceFails(t *testing.T) {
	svc, _, pub := newFacultyFixture()

	err := svc.Archive(context.Background(), "fac-2")
	require.ErrorIs(t, err, appErrors.ErrFacultyArchived)
	assert.Empty(t, pub.events)
}

func TestFacultyArchiveUnknown(t *testing.T) {
	svc, _, _ := newFacultyFixture()

	err := svc.Archive(context.Background(), "missing")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "Faculty not found", appErr.Message)
}

func TestFacultyCertificate(t *testing.T) {
	svc, _, _ := newFacultyFixture()

	doc, err := svc.Certificate(context.Background(), CreateCertificateRequest{
		FacultyID:   "fac-1",
		StudentName: "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.True(t, len(doc) > 0)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestFacultyCertificateRefusesArchived(t *testing.T) {
	svc, _, _ := newFacultyFixture()

	_, err := svc.Certificate(context.Background(), CreateCertificateRequest{
		FacultyID:   "fac-2",
		StudentName: "Ada Lovelace",
	})
	require.ErrorIs(t, err, appErrors.ErrFacultyArchived)
}

func TestCertificateSerialFormat(t *testing.T) {
	issued := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "20260901-01234567", certificateSerial("0123456789abcdef", issued))
	assert.Equal(t, "20260901-short", certificateSerial("short", issued))
}
