package repository

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(512);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (UserModel) TableName() string { return "users" }

// RequestModel is the GORM model for the item_requests table.
type RequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	Requester   UserModel `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	Description string    `gorm:"type:varchar(1000);not null"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (RequestModel) TableName() string { return "item_requests" }

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	Owner       UserModel     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name        string        `gorm:"type:varchar(255);not null"`
	Description string        `gorm:"type:varchar(1000);not null"`
	Available   bool          `gorm:"column:is_available;not null"`
	RequestID   *uuid.UUID    `gorm:"type:uuid;index"`
	Request     *RequestModel `gorm:"foreignKey:RequestID;constraint:OnDelete:SET NULL"`
	Version     int64         `gorm:"not null;default:1"`
	CreatedAt   time.Time     `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt   time.Time     `gorm:"type:timestamptz;not null;default:now()"`
}

func (ItemModel) TableName() string { return "items" }

// BookingModel is the GORM model for the bookings table. Its item and booker
// cannot be deleted while the booking exists.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartDate time.Time `gorm:"type:timestamptz;not null"`
	EndDate   time.Time `gorm:"type:timestamptz;not null"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Item      ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT"`
	BookerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Booker    UserModel `gorm:"foreignKey:BookerID;constraint:OnDelete:RESTRICT"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (BookingModel) TableName() string { return "bookings" }

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Item      ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Author    UserModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string    `gorm:"type:varchar(2000);not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (CommentModel) TableName() string { return "comments" }

// AllModels lists every model in dependency order, for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{&UserModel{}, &RequestModel{}, &ItemModel{}, &BookingModel{}, &CommentModel{}}
}
