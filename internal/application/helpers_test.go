package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/clock"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e kafka.CloudEvent) bool { return e.Type == eventType })
}

type testEnv struct {
	now       time.Time
	store     *memory.Store
	publisher *mockPublisher
	users     *UserService
	items     *ItemService
	bookings  *BookingService
	comments  *CommentService
	requests  *RequestService
	seq       int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	clk := clock.Fixed{At: now}
	log := zap.NewNop()
	store := memory.NewStore()
	pub := &mockPublisher{}

	bookingRepo := store.Bookings()
	projector := bookingDomain.NewAvailabilityProjector(bookingRepo)

	return &testEnv{
		now:       now,
		store:     store,
		publisher: pub,
		users:     NewUserService(store.Users(), clk, log),
		items:     NewItemService(store.Items(), store.Users(), store.Comments(), store.Requests(), projector, clk, log),
		bookings:  NewBookingService(bookingRepo, store.Users(), store.Items(), pub, clk, log),
		comments:  NewCommentService(store.Comments(), bookingRepo, store.Users(), store.Items(), clk, log),
		requests:  NewRequestService(store.Requests(), store.Items(), store.Users(), clk, log),
	}
}

// quietPublisher accepts any event without asserting on it.
func (e *testEnv) quietPublisher() {
	e.publisher.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (e *testEnv) user(t *testing.T) uuid.UUID {
	t.Helper()
	e.seq++
	u, err := e.users.CreateUser(context.Background(), CreateUserRequest{
		Name:  fmt.Sprintf("user%d", e.seq),
		Email: fmt.Sprintf("user%d@example.com", e.seq),
	})
	require.NoError(t, err)
	return u.ID
}

func (e *testEnv) item(t *testing.T, ownerID uuid.UUID, available bool) uuid.UUID {
	t.Helper()
	e.seq++
	it, err := e.items.CreateItem(context.Background(), ownerID, CreateItemRequest{
		Name:        fmt.Sprintf("Item %d", e.seq),
		Description: "a useful thing",
		Available:   &available,
	})
	require.NoError(t, err)
	return it.ID
}

func (e *testEnv) book(t *testing.T, bookerID, itemID uuid.UUID, start, end time.Duration) *BookingDTO {
	t.Helper()
	bk, err := e.bookings.AddBooking(context.Background(), bookerID, CreateBookingRequest{
		ItemID: itemID,
		Start:  e.now.Add(start),
		End:    e.now.Add(end),
	})
	require.NoError(t, err)
	return bk
}

func (e *testEnv) approve(t *testing.T, ownerID, bookingID uuid.UUID) {
	t.Helper()
	_, err := e.bookings.ApproveBooking(context.Background(), ownerID, bookingID, true)
	require.NoError(t, err)
}

func bookingIDs(bookings []BookingDTO) []uuid.UUID {
	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return ids
}
