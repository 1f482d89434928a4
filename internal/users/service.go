package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/threadline/threadline-backend/pkg/db"
	"github.com/threadline/threadline-backend/pkg/db/models"
	"github.com/threadline/threadline-backend/pkg/enums"
	pkgerrors "github.com/threadline/threadline-backend/pkg/errors"
)

// ProfileDTO is the outward user representation.
type ProfileDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileInput carries a profile update. Email identifies the account
// when the row does not exist yet.
type UpdateProfileInput struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	Repo *Repository
}

// Service serves user profiles.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (ProfileDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a users service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Get loads a profile by id.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (ProfileDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return toProfileDTO(user), nil
}

// UpdateProfile applies the update, creating the row when it does not exist
// yet. A username held by another account is a conflict.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (ProfileDTO, error) {
	if userID == uuid.Nil {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	_, err := s.repo.FindByID(ctx, userID)
	switch {
	case err == nil:
		fields := map[string]any{"username": username}
		if input.FullName != nil {
			fields["full_name"] = *input.FullName
		}
		if input.AvatarURL != nil {
			fields["avatar_url"] = *input.AvatarURL
		}
		updated, err := s.repo.Update(ctx, userID, fields)
		if err != nil {
			return ProfileDTO{}, wrapUsernameErr(err)
		}
		return toProfileDTO(updated), nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		email := strings.TrimSpace(input.Email)
		if email == "" {
			return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
		}
		user := models.User{
			ID:       userID,
			Email:    email,
			Username: username,
			Role:     enums.RoleUser,
			IsActive: true,
		}
		if input.FullName != nil {
			user.FullName = *input.FullName
		}
		if input.AvatarURL != nil {
			user.AvatarURL = *input.AvatarURL
		}
		if err := s.repo.Create(ctx, &user); err != nil {
			return ProfileDTO{}, wrapUsernameErr(err)
		}
		return toProfileDTO(&user), nil

	default:
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
}

func wrapUsernameErr(err error) error {
	if db.IsUniqueViolation(err, "users_username_key") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username already taken")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save user")
}

func toProfileDTO(user *models.User) ProfileDTO {
	return ProfileDTO{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}
