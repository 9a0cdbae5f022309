package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
)

// RoleService backs the read-only roles screen and the role select on the
// user modal.
type RoleService struct {
	client   *funval.Client
	logger   *zap.Logger
	pageSize int
}

// NewRoleService creates an instance of RoleService.
func NewRoleService(client *funval.Client, logger *zap.Logger, pageSize int) *RoleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{client: client, logger: logger, pageSize: pageSize}
}

// List fetches all roles and applies the shared filter/paginate pattern.
func (s *RoleService) List(ctx context.Context, auth funval.Auth, q ListQuery) (Listing[models.Role], error) {
	roles, err := s.client.ListRoles(ctx, auth)
	if err != nil {
		return Listing[models.Role]{}, err
	}
	return buildListing(roles, q, s.pageSize, func(r models.Role) []string {
		return []string{r.Name}
	}), nil
}

// All returns the unfiltered role catalogue for select inputs.
func (s *RoleService) All(ctx context.Context, auth funval.Auth) ([]models.Role, error) {
	return s.client.ListRoles(ctx, auth)
}
