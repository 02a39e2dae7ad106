package models

// CasualTeacher is an external substitute available to cover an absent
// teacher's day. Managed by hand through the casual directory endpoints.
type CasualTeacher struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
