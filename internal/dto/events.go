package dto

type SignupEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

type PasswordResetEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

type RegistrationSubmittedEvent struct {
	RegistrationID string `json:"registration_id"`
	UserID         *uint  `json:"user_id,omitempty"`
	TeamName       string `json:"team_name"`
}
