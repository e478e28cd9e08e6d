package repository

import (
	"fmt"
	"time"

	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

var pg = goqu.Dialect("postgres")

type projectionSide int

const (
	sideLast projectionSide = iota
	sideNext
)

func (s projectionSide) String() string {
	if s == sideNext {
		return "next"
	}
	return "last"
}

// lastNextQuery builds a query returning, per item, the id of the approved
// booking closest to now on one side:
//
//	SELECT DISTINCT ON (b.item_id) b.id FROM bookings b JOIN items i ...
//	ORDER BY b.item_id, b.start_date DESC   -- last
//	ORDER BY b.item_id, b.start_date ASC    -- next
//
// Values are inlined as literals so the SQL can be handed to gorm.Raw as is.
func lastNextQuery(side projectionSide, itemIDs []uuid.UUID, ownerID uuid.UUID, now time.Time) (string, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	startCol := goqu.I("b.start_date")
	where := []exp.Expression{
		goqu.I("b.item_id").In(ids),
		goqu.I("i.owner_id").Eq(ownerID.String()),
		goqu.I("b.status").Eq(bookingDomain.StatusApproved.String()),
	}
	order := startCol.Desc()
	if side == sideLast {
		where = append(where, startCol.Lt(now.UTC()))
	} else {
		where = append(where, startCol.Gt(now.UTC()))
		order = startCol.Asc()
	}

	query, _, err := pg.From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Select(goqu.I("b.id")).
		Distinct(goqu.I("b.item_id")).
		Where(where...).
		Order(goqu.I("b.item_id").Asc(), order).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("failed to build %s projection query: %w", side, err)
	}
	return query, nil
}
