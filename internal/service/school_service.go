package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
)

// SchoolForm is the editable shape for the school modal.
type SchoolForm struct {
	Name string `form:"name" validate:"required"`
}

// SchoolService backs the admin schools screen.
type SchoolService struct {
	client    *funval.Client
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewSchoolService creates an instance of SchoolService.
func NewSchoolService(client *funval.Client, validate *validator.Validate, logger *zap.Logger, pageSize int) *SchoolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SchoolService{client: client, validator: validate, logger: logger, pageSize: pageSize}
}

func schoolSearchFields(s models.School) []string {
	return []string{s.Name}
}

// List fetches all schools and applies the shared filter/paginate pattern.
func (s *SchoolService) List(ctx context.Context, auth funval.Auth, q ListQuery) (Listing[models.School], error) {
	schools, err := s.client.ListSchools(ctx, auth)
	if err != nil {
		return Listing[models.School]{}, err
	}
	return buildListing(schools, q, s.pageSize, schoolSearchFields), nil
}

// Get loads one school for the edit modal.
func (s *SchoolService) Get(ctx context.Context, auth funval.Auth, id int) (*models.School, error) {
	return s.client.GetSchool(ctx, auth, id)
}

// Create validates the form and creates the school.
func (s *SchoolService) Create(ctx context.Context, auth funval.Auth, form SchoolForm) (FieldErrors, error) {
	if fe := validateStruct(s.validator, form); !fe.Valid() {
		return fe, nil
	}
	return nil, s.client.CreateSchool(ctx, auth, funval.SchoolPayload{Name: form.Name})
}

// Update validates the form and updates the school.
func (s *SchoolService) Update(ctx context.Context, auth funval.Auth, id int, form SchoolForm) (FieldErrors, error) {
	if fe := validateStruct(s.validator, form); !fe.Valid() {
		return fe, nil
	}
	return nil, s.client.UpdateSchool(ctx, auth, id, funval.SchoolPayload{Name: form.Name})
}
