package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag classifies recipes. Managed by administrators only.
type Tag struct {
	ID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name  string    `gorm:"size:70;uniqueIndex;not null" json:"name"`
	Slug  string    `gorm:"size:70;uniqueIndex;not null" json:"slug"`
	Color string    `gorm:"size:10;uniqueIndex;not null" json:"color"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// Ingredient is reference data loaded by the import command.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name            string    `gorm:"size:70;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:20;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}
