package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Favorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe;index" json:"recipe_id"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	return nil
}

type ShoppingCartEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_recipe;index" json:"recipe_id"`
}

func (e *ShoppingCartEntry) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}

// Subscription is a follow from SubscriberID to AuthorID. Following yourself
// is rejected by the service and by a check constraint.
type Subscription struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	SubscriberID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_subscription_pair" json:"subscriber_id"`
	AuthorID     uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_subscription_pair;index;check:chk_subscription_not_self,subscriber_id <> author_id" json:"author_id"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
