package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
)

// UserForm is the editable shape for the user modal.
type UserForm struct {
	FirstName  string `form:"f_name" validate:"required"`
	MiddleName string `form:"m_name"`
	LastName   string `form:"f_lastname" validate:"required"`
	SecondLast string `form:"s_lastname"`
	Email      string `form:"email" validate:"required,email"`
	RoleID     int    `form:"role_id" validate:"required,gt=0"`
	Password   string `form:"password"`
}

// UserService backs the admin users screen.
type UserService struct {
	client    *funval.Client
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewUserService creates an instance of UserService.
func NewUserService(client *funval.Client, validate *validator.Validate, logger *zap.Logger, pageSize int) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{client: client, validator: validate, logger: logger, pageSize: pageSize}
}

func userSearchFields(u models.User) []string {
	return []string{u.FirstName, u.LastName, u.Email, u.Role.Name}
}

// List fetches all users and applies the shared filter/paginate pattern.
func (s *UserService) List(ctx context.Context, auth funval.Auth, q ListQuery) (Listing[models.User], error) {
	users, err := s.client.ListUsers(ctx, auth)
	if err != nil {
		return Listing[models.User]{}, err
	}
	return buildListing(users, q, s.pageSize, userSearchFields), nil
}

// Get loads one user for the edit modal.
func (s *UserService) Get(ctx context.Context, auth funval.Auth, id int) (*models.User, error) {
	return s.client.GetUser(ctx, auth, id)
}

// Create validates the form and creates the user. A password is mandatory on
// create only.
func (s *UserService) Create(ctx context.Context, auth funval.Auth, form UserForm) (FieldErrors, error) {
	fe := validateStruct(s.validator, form)
	if fe == nil {
		fe = FieldErrors{}
	}
	if form.Password == "" {
		fe["Password"] = "this field is required"
	} else if len(form.Password) < 6 {
		fe["Password"] = "must have at least 6 characters"
	}
	if !fe.Valid() {
		return fe, nil
	}

	return nil, s.client.CreateUser(ctx, auth, payloadFromUserForm(form))
}

// Update validates the form and updates the user. An empty password leaves
// the current one untouched.
func (s *UserService) Update(ctx context.Context, auth funval.Auth, id int, form UserForm) (FieldErrors, error) {
	if fe := validateStruct(s.validator, form); !fe.Valid() {
		return fe, nil
	}
	return nil, s.client.UpdateUser(ctx, auth, id, payloadFromUserForm(form))
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, auth funval.Auth, id int) error {
	return s.client.DeleteUser(ctx, auth, id)
}

func payloadFromUserForm(form UserForm) funval.UserPayload {
	return funval.UserPayload{
		FirstName:  form.FirstName,
		MiddleName: form.MiddleName,
		LastName:   form.LastName,
		SecondLast: form.SecondLast,
		Email:      form.Email,
		RoleID:     form.RoleID,
		Password:   form.Password,
	}
}
