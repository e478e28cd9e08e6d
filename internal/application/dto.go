package application

import (
	"time"

	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	commentDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/comment"
	itemDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/item"
	requestDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/request"
	userDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/user"
	"github.com/google/uuid"
)

// UserDTO is the API representation of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRefDTO identifies the booker inside a booking.
type UserRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemRefDTO identifies the booked item inside a booking.
type ItemRefDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"owner_id"`
}

// BookingDTO is the API representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID  `json:"id"`
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Status string     `json:"status"`
	Item   ItemRefDTO `json:"item"`
	Booker UserRefDTO `json:"booker"`
}

// BookingShortDTO is the last/next annotation on an item.
type BookingShortDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentDTO is the API representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created"`
}

// ItemRequestDTO is the API representation of an item request together with
// the items listed in answer to it.
type ItemRequestDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Items       []ItemDTO `json:"items"`
}

// ItemDTO is the API representation of an item. Annotations are only
// filled for single-item and owner listings.
type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	RequestID   *uuid.UUID       `json:"request_id"`
	LastBooking *BookingShortDTO `json:"last_booking"`
	NextBooking *BookingShortDTO `json:"next_booking"`
	Comments    []CommentDTO     `json:"comments"`
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func toBookingDTO(b *bookingDomain.Booking) BookingDTO {
	dto := BookingDTO{
		ID:     b.ID(),
		Start:  b.Start(),
		End:    b.End(),
		Status: b.Status().String(),
	}
	if it := b.Item(); it != nil {
		dto.Item = ItemRefDTO{ID: it.ID(), Name: it.Name(), OwnerID: it.OwnerID()}
	}
	if u := b.Booker(); u != nil {
		dto.Booker = UserRefDTO{ID: u.ID(), Name: u.Name()}
	}
	return dto
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	out := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingDTO(b)
	}
	return out
}

func toBookingShortDTO(b *bookingDomain.Booking) *BookingShortDTO {
	if b == nil {
		return nil
	}
	return &BookingShortDTO{
		ID:       b.ID(),
		BookerID: b.BookerID(),
		Start:    b.Start(),
		End:      b.End(),
	}
}

func toCommentDTO(c *commentDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		CreatedAt:  c.CreatedAt(),
	}
}

func toCommentDTOs(comments []*commentDomain.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = toCommentDTO(c)
	}
	return out
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
	}
}

func toItemDTOs(items []*itemDomain.Item) []ItemDTO {
	out := make([]ItemDTO, len(items))
	for i, it := range items {
		out[i] = toItemDTO(it)
	}
	return out
}

func toAnnotatedItemDTO(it *itemDomain.Item, ln bookingDomain.LastNext, comments []*commentDomain.Comment) ItemDTO {
	dto := toItemDTO(it)
	dto.LastBooking = toBookingShortDTO(ln.Last)
	dto.NextBooking = toBookingShortDTO(ln.Next)
	dto.Comments = toCommentDTOs(comments)
	return dto
}

func toItemRequestDTO(r *requestDomain.ItemRequest, answers []*itemDomain.Item) ItemRequestDTO {
	return ItemRequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     r.CreatedAt(),
		Items:       toItemDTOs(answers),
	}
}
