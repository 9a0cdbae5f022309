package models

// User is an account as served by the backend.
type User struct {
	ID         int    `json:"id"`
	FirstName  string `json:"f_name"`
	MiddleName string `json:"m_name,omitempty"`
	LastName   string `json:"f_lastname"`
	SecondLast string `json:"s_lastname,omitempty"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
}

// FullName joins the populated name parts for display.
func (u User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
