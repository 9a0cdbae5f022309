package models

import "time"

// Service statuses as the backend names them. A service is terminal once it
// leaves Pending; the review form is never shown again after that.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Review decision codes expected by the PATCH review endpoint.
const (
	ReviewCodeApprove = "1"
	ReviewCodeReject  = "2"
)

// Service is a service-hour submission made by a student.
type Service struct {
	ID             int       `json:"id"`
	User           *User     `json:"user,omitempty"`
	Category       *Category `json:"category,omitempty"`
	AmountReported float64   `json:"amount_reported"`
	AmountApproved *float64  `json:"amount_approved,omitempty"`
	Status         string    `json:"status"`
	Description    string    `json:"description,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	Reviewer       *User     `json:"reviewer,omitempty"`
	EvidenceID     *int      `json:"evidence_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Reviewed reports whether the submission has reached a terminal status.
func (s Service) Reviewed() bool {
	return s.Status == StatusApproved || s.Status == StatusRejected
}

// CategoryName is a nil-safe accessor for table rendering.
func (s Service) CategoryName() string {
	if s.Category == nil {
		return ""
	}
	return s.Category.Name
}

// ReporterName is a nil-safe accessor for table rendering.
func (s Service) ReporterName() string {
	if s.User == nil {
		return ""
	}
	return s.User.FullName()
}

// ReviewerName is a nil-safe accessor for table rendering.
func (s Service) ReviewerName() string {
	if s.Reviewer == nil {
		return ""
	}
	return s.Reviewer.FullName()
}

// ApprovedDisplay renders the approved amount, empty while pending.
func (s Service) ApprovedDisplay() *float64 {
	if !s.Reviewed() {
		return nil
	}
	return s.AmountApproved
}
