package funval

import (
	"context"
	"fmt"

	"github.com/funval/hs-dashboard/internal/models"
)

// ListStudents fetches every student profile.
func (c *Client) ListStudents(ctx context.Context, auth Auth) ([]models.Student, error) {
	var students []models.Student
	if err := c.getJSON(ctx, auth, "students", &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent fetches one student with schools and service history.
func (c *Client) GetStudent(ctx context.Context, auth Auth, id int) (*models.Student, error) {
	var student models.Student
	if err := c.getJSON(ctx, auth, fmt.Sprintf("students/%d", id), &student); err != nil {
		return nil, err
	}
	return &student, nil
}
