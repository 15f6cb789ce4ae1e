package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// UserService serves public user profiles
type UserService struct {
	db    *gorm.DB
	views *viewBuilder
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, views: newViewBuilder(db, nil)}
}

// GetUser returns a profile with is_subscribed computed for viewer
func (s *UserService) GetUser(ctx context.Context, viewerID, id uuid.UUID) (*types.UserResponse, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	out, err := s.views.users(ctx, viewerID, []model.User{user})
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	return &out[0], nil
}

// Me returns the caller's own profile
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error) {
	return s.GetUser(ctx, userID, userID)
}

// ListUsers returns one page of users ordered by username
func (s *UserService) ListUsers(ctx context.Context, viewerID uuid.UUID, page types.PageQuery) ([]types.UserResponse, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.User{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("failed to count users", err)
	}

	var users []model.User
	if err := query.Order("username").Limit(page.Limit).Offset(page.Offset()).Find(&users).Error; err != nil {
		return nil, 0, apperr.Internal("failed to list users", err)
	}

	out, err := s.views.users(ctx, viewerID, users)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list users", err)
	}
	return out, total, nil
}
