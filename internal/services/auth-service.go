package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/confluencehack/registration_service/internal/domain"
	"github.com/confluencehack/registration_service/internal/dto"
	"github.com/confluencehack/registration_service/internal/helper"
	"github.com/confluencehack/registration_service/internal/interfaces"
	"github.com/confluencehack/registration_service/internal/otp"
	"github.com/confluencehack/registration_service/internal/repository"
)

const (
	PurposeSignup = "signup"
	PurposeReset  = "reset"
)

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("no account found with this email")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService interface {
	RequestCode(ctx context.Context, email, purpose string) error
	CompleteSignup(ctx context.Context, email, code, password string) (*domain.User, error)
	CompletePasswordReset(ctx context.Context, email, code, newPassword string) error
	SignIn(email, password string) (*domain.User, error)
}

type authService struct {
	repo     repository.UserRepository
	codes    otp.Store
	mailer   interfaces.Mailer
	producer interfaces.ProducerHandler
	auth     helper.Auth
}

func NewAuthService(
	repo repository.UserRepository,
	codes otp.Store,
	mailer interfaces.Mailer,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
) AuthService {
	return &authService{
		repo:     repo,
		codes:    codes,
		mailer:   mailer,
		producer: producer,
		auth:     auth,
	}
}

// RequestCode stores a fresh code for the email, replacing any pending one,
// and delivers it by mail. Emails are kept case-sensitive as stored.
func (s *authService) RequestCode(ctx context.Context, email, purpose string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if purpose == "" {
		purpose = PurposeSignup
	}

	exists, err := s.repo.ExistsByEmail(email)
	if err != nil {
		return err
	}

	switch purpose {
	case PurposeSignup:
		if exists {
			return ErrEmailRegistered
		}
	case PurposeReset:
		if !exists {
			return ErrAccountNotFound
		}
	default:
		return fmt.Errorf("unknown purpose %q", purpose)
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	if err := s.codes.Put(ctx, email, code); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	body := fmt.Sprintf("Your OTP is: %s", code)
	if err := s.mailer.Send(email, "Your Verification OTP", body); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}

	return nil
}

func (s *authService) CompleteSignup(ctx context.Context, email, code, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	ok, err := s.codes.Consume(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	exists, err := s.repo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hashed, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(&domain.User{
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		// the account may have been created by a concurrent request after
		// the existence check; the unique index is the source of truth
		return nil, ErrUserExists
	}

	s.publish("user.signup", dto.SignupEvent{UserID: user.ID, Email: user.Email})

	return user, nil
}

func (s *authService) CompletePasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(email)

	ok, err := s.codes.Consume(ctx, email, code)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if !ok {
		return ErrInvalidOTP
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	hashed, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	if err := s.repo.SaveUser(user); err != nil {
		return err
	}

	s.publish("user.reset_password", dto.PasswordResetEvent{UserID: user.ID, Email: user.Email})

	return nil
}

// SignIn returns the same generic error for an unknown email and a wrong
// password, so accounts cannot be enumerated.
func (s *authService) SignIn(email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) publish(key string, event any) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal %s event: %v", key, err)
		return
	}
	if err := s.producer.PublishMessage([]byte(key), payload); err != nil {
		log.Printf("publish %s event: %v", key, err)
	}
}
