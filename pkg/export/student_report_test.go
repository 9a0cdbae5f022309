package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funval/hs-dashboard/internal/models"
)

func TestRenderProducesPDF(t *testing.T) {
	approved := 6.0
	student := &models.Student{
		ID:        1,
		FirstName: "Ana",
		LastName:  "Perez",
		Email:     "ana@funval.org",
		Country:   "Peru",
		Schools:   []models.School{{ID: 1, Name: "Lima Norte"}},
		Controller: &models.User{
			FirstName: "Carlos", LastName: "Diaz", Email: "carlos@funval.org",
		},
		Services: []models.Service{
			{
				Status:         models.StatusApproved,
				AmountReported: 8,
				AmountApproved: &approved,
				Category:       &models.Category{Name: "Tutoring"},
			},
			{Status: models.StatusPending, AmountReported: 3},
		},
	}

	pdf, err := NewStudentReport().Render(student, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderNilStudent(t *testing.T) {
	_, err := NewStudentReport().Render(nil, time.Now())
	require.Error(t, err)
}

func TestRenderStudentWithoutServices(t *testing.T) {
	student := &models.Student{ID: 2, FirstName: "Luis", Email: "luis@funval.org"}

	pdf, err := NewStudentReport().Render(student, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
