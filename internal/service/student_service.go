package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
	"github.com/funval/hs-dashboard/pkg/export"
)

// StudentService backs the admin students screen and the PDF report.
type StudentService struct {
	client   *funval.Client
	report   *export.StudentReport
	logger   *zap.Logger
	pageSize int
}

// NewStudentService creates an instance of StudentService.
func NewStudentService(client *funval.Client, report *export.StudentReport, logger *zap.Logger, pageSize int) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if report == nil {
		report = export.NewStudentReport()
	}
	return &StudentService{client: client, report: report, logger: logger, pageSize: pageSize}
}

func studentSearchFields(s models.Student) []string {
	return []string{s.FirstName, s.LastName, s.Email, s.Country}
}

// List fetches all students and applies the shared filter/paginate pattern.
func (s *StudentService) List(ctx context.Context, auth funval.Auth, q ListQuery) (Listing[models.Student], error) {
	students, err := s.client.ListStudents(ctx, auth)
	if err != nil {
		return Listing[models.Student]{}, err
	}
	return buildListing(students, q, s.pageSize, studentSearchFields), nil
}

// Get loads one student with schools and service history.
func (s *StudentService) Get(ctx context.Context, auth funval.Auth, id int) (*models.Student, error) {
	return s.client.GetStudent(ctx, auth, id)
}

// Report renders the student PDF report and returns it with the suggested
// download filename.
func (s *StudentService) Report(ctx context.Context, auth funval.Auth, id int) ([]byte, string, error) {
	student, err := s.client.GetStudent(ctx, auth, id)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.report.Render(student, time.Now())
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("estudiante_%d_%s_%s.pdf", student.ID, student.FirstName, student.LastName)
	return pdf, filename, nil
}
