package domain

import "time"

type EventType string

const (
	EventItemCreated      EventType = "item.created"
	EventItemUpdated      EventType = "item.updated"
	EventItemDeleted      EventType = "item.deleted"
	EventCategoryLinked   EventType = "item.category.linked"
	EventCategoryUnlinked EventType = "item.category.unlinked"
)

// ItemEvent is broadcast after a write to an item or its category links.
type ItemEvent struct {
	Type       EventType `json:"type"`
	ItemID     int64     `json:"itemId,omitempty"`
	CategoryID int64     `json:"categoryId,omitempty"`
	JoinID     int64     `json:"joinId,omitempty"`
	At         time.Time `json:"at"`
}
