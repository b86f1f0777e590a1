package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	repository "github.com/DanekaBm/eventhub/internal/database/postgres"
	"github.com/DanekaBm/eventhub/internal/entity"
	"github.com/DanekaBm/eventhub/pkg/upload"
)

type userService struct {
	userRepo repository.UserRepository
	sessions SessionStore
	uploads  *upload.Service
}

func NewUserService(userRepo repository.UserRepository, sessions SessionStore, uploads *upload.Service) UserService {
	return &userService{
		userRepo: userRepo,
		sessions: sessions,
		uploads:  uploads,
	}
}

func (s *userService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, entity.ErrInvalidInput
		}
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, entity.ErrInvalidInput
		}
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return entity.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func (s *userService) SetAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.uploads.SaveImage(file, "avatars")
	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}

	// The replaced avatar file is gone for good; best effort only.
	if user.AvatarURL != "" {
		if err := s.uploads.DeleteByURL(user.AvatarURL); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("failed to remove old avatar file")
		}
	}

	return url, nil
}

func (s *userService) GetAllUsers(ctx context.Context, requesterRole entity.Role) ([]*entity.User, error) {
	if !requesterRole.IsAdmin() {
		return nil, entity.ErrForbidden
	}
	return s.userRepo.GetAll(ctx)
}

func (s *userService) DeleteUser(ctx context.Context, requesterRole entity.Role, targetID int64) error {
	if !requesterRole.IsAdmin() {
		return entity.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	if err := s.sessions.DeleteAllForUser(ctx, targetID); err != nil {
		logrus.WithError(err).WithField("user_id", targetID).Warn("failed to revoke sessions of deleted user")
	}

	if user.AvatarURL != "" {
		if err := s.uploads.DeleteByURL(user.AvatarURL); err != nil {
			logrus.WithError(err).WithField("user_id", targetID).Warn("failed to remove avatar file of deleted user")
		}
	}

	return nil
}
