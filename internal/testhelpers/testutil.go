package testhelpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
)

// TestPassword is the plain-text password of every user created by CreateUser.
const TestPassword = "Sup3r-secret"

// CreateUser inserts a user named username with TestPassword.
func CreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateAdmin inserts an administrator.
func CreateAdmin(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := CreateUser(t, db, username)
	if err := db.Model(user).Update("role", model.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
	user.Role = model.RoleAdmin
	return user
}

func CreateTag(t *testing.T, db *gorm.DB, name, slug, color string) *model.Tag {
	t.Helper()
	tag := &model.Tag{Name: name, Slug: slug, Color: color}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	return tag
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *model.Ingredient {
	t.Helper()
	ing := &model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ing).Error; err != nil {
		t.Fatalf("failed to create ingredient: %v", err)
	}
	return ing
}

// Catalog holds a small set of reference data shared by service and handler tests.
type Catalog struct {
	Breakfast *model.Tag
	Dinner    *model.Tag
	Flour     *model.Ingredient
	Egg       *model.Ingredient
	Milk      *model.Ingredient
}

// SeedCatalog inserts the reference data used across tests.
func SeedCatalog(t *testing.T, db *gorm.DB) *Catalog {
	t.Helper()
	return &Catalog{
		Breakfast: CreateTag(t, db, "Breakfast", "breakfast", "#E26C2D"),
		Dinner:    CreateTag(t, db, "Dinner", "dinner", "#8775D2"),
		Flour:     CreateIngredient(t, db, "flour", "g"),
		Egg:       CreateIngredient(t, db, "egg", "pcs"),
		Milk:      CreateIngredient(t, db, "milk", "ml"),
	}
}
