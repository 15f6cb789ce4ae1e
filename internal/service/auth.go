package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
	"github.com/pageza/cookbook/backend/internal/validation"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	tokenTTL  time.Duration
	hashCost  int
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		hashCost:  bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// Register creates an account. Email and username are unique.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*model.User, error) {
	if !validation.IsValidUsername(req.Username) {
		return nil, apperr.InvalidField("username", "username is not allowed")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? OR username = ?", email, req.Username).
		Count(&existing).Error
	if err != nil {
		return nil, apperr.Internal("failed to check user", err)
	}
	if existing > 0 {
		return nil, apperr.AlreadyExists("user with this email or username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &model.User{
		Email:        email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.AlreadyExists("user with this email or username already exists")
		}
		return nil, apperr.Internal("failed to create user", err)
	}
	return user, nil
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.Unauthenticated("invalid credentials")
		}
		return "", apperr.Internal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Unauthenticated("invalid credentials")
	}

	return s.GenerateToken(&user)
}

func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", apperr.Internal("failed to sign token", err)
	}
	return signed, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}
	if claims.UserID == uuid.Nil {
		return nil, apperr.Unauthenticated("invalid token claims")
	}
	return claims, nil
}

// SetPassword replaces the password after checking the current one
func (s *AuthService) SetPassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperr.InvalidField("current_password", "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.hashCost)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	err = s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("password_hash", string(hash)).Error
	if err != nil {
		return apperr.Internal("failed to update password", err)
	}
	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return &user, nil
}
