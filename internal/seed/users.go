package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/model"
)

// DemoUsers are the local development accounts created by cmd/seed_test_users
var DemoUsers = []model.User{
	{Email: "john.doe@example.com", Username: "johndoe", FirstName: "John", LastName: "Doe"},
	{Email: "jane.smith@example.com", Username: "janesmith", FirstName: "Jane", LastName: "Smith"},
	{Email: "bob.wilson@example.com", Username: "bobwilson", FirstName: "Bob", LastName: "Wilson"},
	{Email: "admin@example.com", Username: "admin", FirstName: "Admin", LastName: "User", Role: model.RoleAdmin},
}

// SeedDemoUsers creates DemoUsers sharing one password. Existing accounts
// are left untouched.
func SeedDemoUsers(ctx context.Context, db *gorm.DB, password string, cost int) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]model.User, len(DemoUsers))
	for i, u := range DemoUsers {
		u.PasswordHash = string(hash)
		users[i] = u
	}

	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&users)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert demo users: %w", result.Error)
	}
	logging.Info().Int64("inserted", result.RowsAffected).Msg("demo users seeded")
	return result.RowsAffected, nil
}
