package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	repository "github.com/DanekaBm/eventhub/internal/database/postgres"
	"github.com/DanekaBm/eventhub/internal/entity"
	"github.com/DanekaBm/eventhub/pkg/token"
)

// SessionStore is the server-side session registry backing token revocation.
type SessionStore interface {
	Create(ctx context.Context, sessionID string, userID int64) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

type authService struct {
	userRepo repository.UserRepository
	sessions SessionStore
	tokens   *token.Manager
}

func NewAuthService(userRepo repository.UserRepository, sessions SessionStore, tokens *token.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, "", entity.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	sessionToken, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, sessionToken, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*entity.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the email exists.
		if err == entity.ErrUserNotFound {
			return nil, "", entity.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	sessionToken, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, sessionToken, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *authService) Authenticate(ctx context.Context, rawToken string) (*Principal, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, entity.ErrUnauthenticated
	}

	live, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !live {
		return nil, entity.ErrUnauthenticated
	}

	// The user may have been deleted since the token was issued; the role
	// comes from the row, not the token, so demotions take effect at once.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if err == entity.ErrUserNotFound {
			return nil, entity.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &Principal{
		UserID:    user.ID,
		Role:      user.Role,
		SessionID: claims.ID,
	}, nil
}

func (s *authService) startSession(ctx context.Context, user *entity.User) (string, error) {
	sessionToken, sessionID, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, sessionID, user.ID); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return sessionToken, nil
}
