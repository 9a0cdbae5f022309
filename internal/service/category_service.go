package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
)

// CategoryForm is the editable shape for the category modal.
type CategoryForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
}

// CategoryService backs the category screens. Admins get full CRUD; the
// student view is read-only, enforced at the routing layer and again by the
// backend.
type CategoryService struct {
	client    *funval.Client
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewCategoryService creates an instance of CategoryService.
func NewCategoryService(client *funval.Client, validate *validator.Validate, logger *zap.Logger, pageSize int) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CategoryService{client: client, validator: validate, logger: logger, pageSize: pageSize}
}

func categorySearchFields(c models.Category) []string {
	return []string{c.Name, c.Description}
}

// List fetches all categories and applies the shared filter/paginate pattern.
func (s *CategoryService) List(ctx context.Context, auth funval.Auth, q ListQuery) (Listing[models.Category], error) {
	categories, err := s.client.ListCategories(ctx, auth)
	if err != nil {
		return Listing[models.Category]{}, err
	}
	return buildListing(categories, q, s.pageSize, categorySearchFields), nil
}

// All returns the unfiltered category list, used to fill select inputs.
func (s *CategoryService) All(ctx context.Context, auth funval.Auth) ([]models.Category, error) {
	return s.client.ListCategories(ctx, auth)
}

// Get loads one category for the edit modal.
func (s *CategoryService) Get(ctx context.Context, auth funval.Auth, id int) (*models.Category, error) {
	return s.client.GetCategory(ctx, auth, id)
}

// Create validates the form and creates the category. Name uniqueness is the
// backend's call; a conflict comes back as a server message.
func (s *CategoryService) Create(ctx context.Context, auth funval.Auth, form CategoryForm) (FieldErrors, error) {
	if fe := validateStruct(s.validator, form); !fe.Valid() {
		return fe, nil
	}
	return nil, s.client.CreateCategory(ctx, auth, funval.CategoryPayload{Name: form.Name, Description: form.Description})
}

// Update validates the form and updates the category.
func (s *CategoryService) Update(ctx context.Context, auth funval.Auth, id int, form CategoryForm) (FieldErrors, error) {
	if fe := validateStruct(s.validator, form); !fe.Valid() {
		return fe, nil
	}
	return nil, s.client.UpdateCategory(ctx, auth, id, funval.CategoryPayload{Name: form.Name, Description: form.Description})
}
