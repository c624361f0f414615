package models

import (
	"time"
)

type Item struct {
	ID            int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Done          bool           `json:"done" gorm:"type:boolean;not null"`
	CategoryItems []CategoryItem `json:"categoryItems" gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE;"`
	CDate         time.Time      `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Category struct {
	ID    int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string    `json:"name" gorm:"type:text;not null"`
	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// CategoryItem has no unique index on (category_id, item_id): duplicate
// suppression is a usecase policy.
type CategoryItem struct {
	ID         int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	CategoryID int64    `json:"categoryID" gorm:"index;not null"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE;"`
	ItemID     int64    `json:"itemID" gorm:"index;not null"`
}
