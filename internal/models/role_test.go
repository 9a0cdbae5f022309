package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleUnmarshalString(t *testing.T) {
	var role Role
	require.NoError(t, json.Unmarshal([]byte(`"Admin"`), &role))
	assert.Equal(t, "Admin", role.Name)
	assert.True(t, role.IsAdmin())
	assert.False(t, role.IsStudent())
}

func TestRoleUnmarshalObject(t *testing.T) {
	var role Role
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"name":"Student"}`), &role))
	assert.Equal(t, 2, role.ID)
	assert.Equal(t, "Student", role.Name)
	assert.True(t, role.IsStudent())
}

func TestRoleUnmarshalNull(t *testing.T) {
	role := Role{ID: 9, Name: "Admin"}
	require.NoError(t, json.Unmarshal([]byte(`null`), &role))
	assert.Empty(t, role.Name)
	assert.Zero(t, role.ID)
}

func TestRoleUnmarshalInsideUser(t *testing.T) {
	var user User
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"email":"a@funval.org","role":"Student"}`), &user))
	assert.Equal(t, "Student", user.Role.Name)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"email":"a@funval.org","role":{"id":1,"name":"Admin"}}`), &user))
	assert.Equal(t, "Admin", user.Role.Name)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(RoleAdmin))
	assert.True(t, Known(RoleStudent))
	assert.False(t, Known("admin"))
	assert.False(t, Known("Supervisor"))
	assert.False(t, Known(""))
}

func TestHomePath(t *testing.T) {
	assert.Equal(t, "/admin/users", HomePath(RoleAdmin))
	assert.Equal(t, "/student/services", HomePath(RoleStudent))
	assert.Equal(t, "/login", HomePath("Supervisor"))
}

func TestServiceReviewed(t *testing.T) {
	assert.False(t, Service{Status: StatusPending}.Reviewed())
	assert.True(t, Service{Status: StatusApproved}.Reviewed())
	assert.True(t, Service{Status: StatusRejected}.Reviewed())
}

func TestServiceApprovedDisplay(t *testing.T) {
	hours := 4.5
	pending := Service{Status: StatusPending, AmountApproved: &hours}
	assert.Nil(t, pending.ApprovedDisplay())

	approved := Service{Status: StatusApproved, AmountApproved: &hours}
	require.NotNil(t, approved.ApprovedDisplay())
	assert.Equal(t, 4.5, *approved.ApprovedDisplay())
}

func TestStudentTotalApprovedHours(t *testing.T) {
	three, five := 3.0, 5.0
	student := Student{Services: []Service{
		{Status: StatusApproved, AmountApproved: &three},
		{Status: StatusApproved, AmountApproved: &five},
		{Status: StatusRejected, AmountApproved: &five},
		{Status: StatusPending},
	}}
	assert.Equal(t, 8.0, student.TotalApprovedHours())
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ana Perez", User{FirstName: "Ana", LastName: "Perez"}.FullName())
	assert.Equal(t, "Ana", User{FirstName: "Ana"}.FullName())
	assert.Equal(t, "a@funval.org", User{Email: "a@funval.org"}.FullName())
}
