package moderator

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
	ErrMissingFields      = errors.New("email and password required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, email, password string) (*Moderator, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	m := &Moderator{
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleModerator,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Moderator, error) {
	m, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Moderator, error) {
	return s.repo.GetByID(ctx, id)
}
