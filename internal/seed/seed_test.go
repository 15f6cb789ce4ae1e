package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func TestParseIngredients(t *testing.T) {
	rows, err := ParseIngredients(strings.NewReader("flour, g\n\"salt, sea\",g\n\negg,pcs\n"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "flour", rows[0].Name)
	assert.Equal(t, "g", rows[0].MeasurementUnit)
	assert.Equal(t, "salt, sea", rows[1].Name)
	assert.Equal(t, "pcs", rows[2].MeasurementUnit)
}

func TestParseIngredientsRejectsBadRows(t *testing.T) {
	_, err := ParseIngredients(strings.NewReader("flour,g\nsugar\n"))
	assert.Error(t, err)

	_, err = ParseIngredients(strings.NewReader("flour,g\n,kg\n"))
	assert.Error(t, err)
}

func TestImportIngredientsSkipsExisting(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()

	inserted, err := ImportIngredients(ctx, db, strings.NewReader("flour,g\negg,pcs\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, inserted)

	inserted, err = ImportIngredients(ctx, db, strings.NewReader("flour,g\nflour,kg\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, inserted)

	var count int64
	require.NoError(t, db.Model(&model.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSeedTagsIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()

	inserted, err := SeedTags(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, len(DefaultTags), inserted)

	inserted, err = SeedTags(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	var slugs []string
	require.NoError(t, db.Model(&model.Tag{}).Order("slug").Pluck("slug", &slugs).Error)
	assert.Equal(t, []string{"breakfast", "dessert", "dinner", "lunch"}, slugs)
}

func TestSeedDemoUsers(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()

	inserted, err := SeedDemoUsers(ctx, db, "demo-password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.EqualValues(t, len(DemoUsers), inserted)

	inserted, err = SeedDemoUsers(ctx, db, "other-password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	var admin model.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("demo-password")))
}
