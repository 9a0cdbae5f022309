package models

// Student is a user with an attached student profile.
type Student struct {
	ID         int       `json:"id"`
	FirstName  string    `json:"f_name"`
	LastName   string    `json:"f_lastname"`
	Email      string    `json:"email"`
	Country    string    `json:"country,omitempty"`
	Controller *User     `json:"controller,omitempty"`
	Recruiter  *User     `json:"recruiter,omitempty"`
	Schools    []School  `json:"schools,omitempty"`
	Services   []Service `json:"services,omitempty"`
}

// FullName joins the populated name parts for display.
func (s Student) FullName() string {
	name := s.FirstName
	if s.LastName != "" {
		if name != "" {
			name += " "
		}
		name += s.LastName
	}
	if name == "" {
		return s.Email
	}
	return name
}

// TotalApprovedHours sums approved amounts over reviewed services.
func (s Student) TotalApprovedHours() float64 {
	var total float64
	for _, svc := range s.Services {
		if svc.Status == StatusApproved && svc.AmountApproved != nil {
			total += *svc.AmountApproved
		}
	}
	return total
}
