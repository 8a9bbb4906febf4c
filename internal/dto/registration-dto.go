package dto

import "github.com/confluencehack/registration_service/internal/domain"

type FileInput struct {
	Filename string
	Bytes    []byte
}

type RegistrationInput struct {
	UserID *uint

	TeamName        string
	InstitutionName string
	TeamSize        int
	Members         string // JSON-encoded array, stored as-is

	ProblemDomain  string
	ProjectTitle   string
	GithubRepoLink string
	DemoVideoURL   string

	AgreeToRules bool

	Bonafide *FileInput // required
	Ppt      *FileInput // optional
}

type AdminSnapshot struct {
	Registrations []domain.HackathonRegistration `json:"hackathon_registration"`
	TotalUsers    int64                          `json:"totalUsers"`
}
