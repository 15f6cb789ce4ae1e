// Package seed loads reference data: ingredients from CSV and the default tags.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/model"
)

const batchSize = 500

// DefaultTags is the tag set a fresh installation starts with
var DefaultTags = []model.Tag{
	{Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"},
	{Name: "Lunch", Slug: "lunch", Color: "#49B64E"},
	{Name: "Dinner", Slug: "dinner", Color: "#8775D2"},
	{Name: "Dessert", Slug: "dessert", Color: "#F2C94C"},
}

// ParseIngredients reads header-less name,measurement_unit rows.
// Blank lines are skipped; surrounding spaces are trimmed.
func ParseIngredients(r io.Reader) ([]model.Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var out []model.Ingredient
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ingredients csv: %w", err)
		}

		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: name and measurement unit are required", line)
		}
		out = append(out, model.Ingredient{Name: name, MeasurementUnit: unit})
	}
	return out, nil
}

// ImportIngredients inserts every row from r, skipping pairs that already
// exist. It returns the number of rows inserted.
func ImportIngredients(ctx context.Context, db *gorm.DB, r io.Reader) (int64, error) {
	ingredients, err := ParseIngredients(r)
	if err != nil {
		return 0, err
	}
	if len(ingredients) == 0 {
		return 0, nil
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(ingredients, batchSize)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert ingredients: %w", result.Error)
	}

	logging.Info().
		Int("read", len(ingredients)).
		Int64("inserted", result.RowsAffected).
		Msg("ingredients imported")
	return result.RowsAffected, nil
}

// SeedTags inserts the default tags that are not present yet
func SeedTags(ctx context.Context, db *gorm.DB) (int64, error) {
	tags := make([]model.Tag, len(DefaultTags))
	copy(tags, DefaultTags)

	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tags)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert tags: %w", result.Error)
	}
	logging.Info().Int64("inserted", result.RowsAffected).Msg("tags seeded")
	return result.RowsAffected, nil
}
