package models

// School is a Funval school a student can be enrolled in.
type School struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
