package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	repo     ports.AccountRepository
	tokens   ports.TokenSigner
	notifier ports.Notifier
	log      zerolog.Logger
	hashCost int
}

func NewAuthService(repo ports.AccountRepository, tokens ports.TokenSigner, notifier ports.Notifier, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		log:      log.With().Str("component", "auth").Logger(),
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.Invalid("Missing required fields")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repo.Create(ctx, &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.ClampRole(in.Role),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Sign(account.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if n, err := welcomeNotification(account); err != nil {
		s.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to render welcome email")
	} else {
		s.notifier.Notify(n)
	}

	s.log.Info().Str("account_id", account.ID).Str("role", account.Role).Msg("account registered")
	return &ports.AuthResult{Token: token, Account: account}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(account.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &ports.AuthResult{Token: token, Account: account}, nil
}

// Me returns the account behind verified claims.
func (s *AuthService) Me(ctx context.Context, claims domain.Claims) (*domain.Account, error) {
	return s.repo.FindByID(ctx, claims.UserID)
}
