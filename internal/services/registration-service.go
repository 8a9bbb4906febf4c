package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/confluencehack/registration_service/internal/domain"
	"github.com/confluencehack/registration_service/internal/dto"
	"github.com/confluencehack/registration_service/internal/interfaces"
	"github.com/confluencehack/registration_service/internal/repository"
)

const (
	bonafideFolder = "hackathon_bonafide"
	pptFolder      = "hackathon_ppt"
)

var (
	ErrBonafideRequired     = errors.New("bonafide file is required")
	ErrAlreadyRegistered = errors.New("user already has a registration")
)

type RegistrationService interface {
	Submit(ctx context.Context, input dto.RegistrationInput) (string, error)
	Status(userID uint) (*string, error)
	AdminSnapshot() (*dto.AdminSnapshot, error)
}

type registrationService struct {
	regRepo  repository.RegistrationRepository
	userRepo repository.UserRepository
	uploader interfaces.Uploader
	mailer   interfaces.Mailer
	producer interfaces.ProducerHandler
	clock    func() time.Time
}

func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	userRepo repository.UserRepository,
	uploader interfaces.Uploader,
	mailer interfaces.Mailer,
	producer interfaces.ProducerHandler,
) RegistrationService {
	return &registrationService{
		regRepo:  regRepo,
		userRepo: userRepo,
		uploader: uploader,
		mailer:   mailer,
		producer: producer,
		clock:    time.Now,
	}
}

// Submit relays the attachments, persists the row and assigns the public
// registration code inside one transaction, then sends the confirmation mail
// when the submission is tied to a known account.
//
// A failed relay degrades the corresponding field to absent instead of
// rejecting the submission; the failure is logged here where the policy is
// chosen.
func (s *registrationService) Submit(ctx context.Context, input dto.RegistrationInput) (string, error) {
	if input.Bonafide == nil || len(input.Bonafide.Bytes) == 0 {
		return "", ErrBonafideRequired
	}

	if input.UserID != nil {
		taken, err := s.regRepo.ExistsForUser(*input.UserID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrAlreadyRegistered
		}
	}

	bonafideURL := s.relay(ctx, bonafideFolder, input.Bonafide)

	var pptURL *string
	if input.Ppt != nil && len(input.Ppt.Bytes) > 0 {
		if url := s.relay(ctx, pptFolder, input.Ppt); url != "" {
			pptURL = &url
		}
	}

	reg := &domain.HackathonRegistration{
		UserID:          input.UserID,
		TeamName:        input.TeamName,
		InstitutionName: input.InstitutionName,
		TeamSize:        input.TeamSize,
		Members:         input.Members,
		ProblemDomain:   input.ProblemDomain,
		ProjectTitle:    input.ProjectTitle,
		GithubRepoLink:  input.GithubRepoLink,
		DemoVideoURL:    input.DemoVideoURL,
		PptFile:         pptURL,
		BonafideFile:    bonafideURL,
		AgreeToRules:    input.AgreeToRules,
		SubmittedAt:     s.clock().UTC(),
	}

	if err := s.regRepo.CreateWithCode(reg, func(id uint) string {
		return fmt.Sprintf("HACK%05d", id)
	}); err != nil {
		return "", err
	}

	s.sendConfirmation(input.UserID, reg.RegistrationID)
	s.publishSubmitted(reg)

	return reg.RegistrationID, nil
}

func (s *registrationService) Status(userID uint) (*string, error) {
	reg, err := s.regRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reg.RegistrationID, nil
}

func (s *registrationService) AdminSnapshot() (*dto.AdminSnapshot, error) {
	regs, err := s.regRepo.ListAll()
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, err
	}

	return &dto.AdminSnapshot{
		Registrations: regs,
		TotalUsers:    total,
	}, nil
}

func (s *registrationService) relay(ctx context.Context, folder string, f *dto.FileInput) string {
	url, err := s.uploader.UploadBytes(ctx, folder, f.Filename, f.Bytes)
	if err != nil {
		log.Printf("relay %s to %s failed, field left absent: %v", f.Filename, folder, err)
		return ""
	}
	return url
}

// sendConfirmation is best-effort: an unknown user reference or a mail
// failure never fails the submission.
func (s *registrationService) sendConfirmation(userID *uint, regID string) {
	if userID == nil {
		return
	}

	user, err := s.userRepo.FindUserById(*userID)
	if err != nil {
		log.Printf("confirmation skipped, user %d: %v", *userID, err)
		return
	}

	body := fmt.Sprintf(
		"Hello,\n\nYour Hackathon registration was successful.\n\nYour Registration ID: %s\n\nGood luck!\n",
		regID,
	)
	if err := s.mailer.Send(user.Email, "Hackathon Registration Confirmed", body); err != nil {
		log.Printf("confirmation mail to %s failed: %v", user.Email, err)
	}
}

func (s *registrationService) publishSubmitted(reg *domain.HackathonRegistration) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.RegistrationSubmittedEvent{
		RegistrationID: reg.RegistrationID,
		UserID:         reg.UserID,
		TeamName:       reg.TeamName,
	})
	if err != nil {
		log.Printf("marshal registration event: %v", err)
		return
	}
	if err := s.producer.PublishMessage([]byte("registration.submitted"), payload); err != nil {
		log.Printf("publish registration event: %v", err)
	}
}
