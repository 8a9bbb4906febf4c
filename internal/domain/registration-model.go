package domain

import "time"

// HackathonRegistration is one team submission. RegistrationID is the public
// code (HACK%05d) derived from ID inside the same transaction as the insert,
// so a committed row always carries its code.
type HackathonRegistration struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"index" json:"user_id"`

	RegistrationID string `gorm:"size:20;uniqueIndex" json:"registration_id"`

	// Team
	TeamName        string `gorm:"size:150;not null" json:"team_name"`
	InstitutionName string `gorm:"size:200;not null" json:"institution_name"`
	TeamSize        int    `gorm:"not null" json:"team_size"`
	Members         string `gorm:"type:text;not null" json:"members"` // JSON-encoded array

	// Project
	ProblemDomain  string `gorm:"size:150;not null" json:"problem_domain"`
	ProjectTitle   string `gorm:"size:300;not null" json:"project_title"`
	GithubRepoLink string `gorm:"size:500;not null" json:"github_repo_link"`
	DemoVideoURL   string `gorm:"size:500;not null" json:"demo_video_url"`

	// Relayed file URLs
	PptFile      *string `gorm:"size:300" json:"ppt_file"`
	BonafideFile string  `gorm:"size:300" json:"bonafide_file"`

	AgreeToRules bool      `gorm:"default:false" json:"agree_to_rules"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func (HackathonRegistration) TableName() string {
	return "hackathon_registrations"
}
