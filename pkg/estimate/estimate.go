package estimate

import (
	"math"
	"sort"
	"strings"

	"github.com/marqueehq/marquee/pkg/types"
)

// Clamp bounds. One malformed record must not dominate an aggregate,
// so every per-booking estimate is clamped before summation.
const (
	MaxSeating   = 200
	MaxCatering  = 100
	MaxStaff     = 50
	MaxFood      = 500
	MaxDrinks    = 300
	MaxMaterials = 150
)

// menuItem is a recognized menu entry and its per-person inventory
// contribution.
type menuItem struct {
	food   int
	drinks int
}

// Recognized menu items, looked up against the booking's menu package.
var menuItems = map[string]menuItem{
	"Mini Pancakes": {food: 3},
	"Fruit Cups":    {food: 2},
	"Iced Tea":      {drinks: 1},
	"Lemonade":      {drinks: 1},
}

// suppliesPerAttendee is the physical supply rate per person.
var suppliesPerAttendee = map[string]float64{
	"chairs":   1,
	"tables":   0.2,
	"plates":   1.2,
	"bowls":    1.1,
	"napkins":  2.1,
	"utensils": 2.5,
}

// Resources estimates seating, catering and staff for a single
// booking. Catering runs at 2 units per attendee, raised to x3 for
// weddings and x4 for buffet packages; the package rule wins when
// both apply. The result is clamped to the package bounds.
func Resources(b *types.Booking) types.ResourceEstimate {
	attendees := b.NumAttendees
	if attendees < 0 {
		attendees = 0
	}

	cateringRate := 2
	if strings.EqualFold(b.EventType, "wedding") || strings.Contains(strings.ToLower(b.EventType), "wedding") {
		cateringRate = 3
	}
	if strings.Contains(b.MenuPackage, "Buffet") {
		cateringRate = 4
	}

	est := types.ResourceEstimate{
		Seating:  attendees,
		Catering: attendees * cateringRate,
		Staff:    int(math.Ceil(float64(attendees) / 10)),
	}
	est.Seating = clampInt(est.Seating, MaxSeating)
	est.Catering = clampInt(est.Catering, MaxCatering)
	est.Staff = clampInt(est.Staff, MaxStaff)
	return est
}

// Inventory estimates food, drink and material quantities for a
// single booking from the recognized menu items present in its menu
// package. Materials run at 1.5 per attendee. The result is clamped
// to the package bounds.
func Inventory(b *types.Booking) types.InventoryEstimate {
	attendees := b.NumAttendees
	if attendees < 0 {
		attendees = 0
	}

	var est types.InventoryEstimate
	for name, item := range menuItems {
		if !strings.Contains(b.MenuPackage, name) {
			continue
		}
		est.Food += attendees * item.food
		est.Drinks += attendees * item.drinks
	}
	est.Materials = float64(attendees) * 1.5

	est.Food = clampInt(est.Food, MaxFood)
	est.Drinks = clampInt(est.Drinks, MaxDrinks)
	est.Materials = clampFloat(est.Materials, MaxMaterials)
	return est
}

// AggregateByEventType sums clamped per-booking estimates grouped by
// event type. Bookings without an event type are skipped.
func AggregateByEventType(bookings []*types.Booking) (map[string]types.ResourceEstimate, map[string]types.InventoryEstimate) {
	resources := make(map[string]types.ResourceEstimate)
	inventory := make(map[string]types.InventoryEstimate)

	for _, b := range bookings {
		if b.EventType == "" {
			continue
		}
		r := Resources(b)
		inv := Inventory(b)

		agg := resources[b.EventType]
		agg.Seating += r.Seating
		agg.Catering += r.Catering
		agg.Staff += r.Staff
		resources[b.EventType] = agg

		iagg := inventory[b.EventType]
		iagg.Food += inv.Food
		iagg.Drinks += inv.Drinks
		iagg.Materials += inv.Materials
		inventory[b.EventType] = iagg
	}
	return resources, inventory
}

// Supplies computes the physical supply allocation needed for each
// event date, ceiling each booking's share before summation.
func Supplies(bookings []*types.Booking) map[string]types.SupplyAllocation {
	allocations := make(map[string]types.SupplyAllocation)
	for _, b := range bookings {
		if b.EventDate.IsZero() || b.NumAttendees <= 0 {
			continue
		}
		date := b.EventDate.Format("2006-01-02")
		need := func(supply string) int {
			return int(math.Ceil(float64(b.NumAttendees) * suppliesPerAttendee[supply]))
		}

		a := allocations[date]
		a.Chairs += need("chairs")
		a.Tables += need("tables")
		a.Plates += need("plates")
		a.Bowls += need("bowls")
		a.Napkins += need("napkins")
		a.Utensils += need("utensils")
		allocations[date] = a
	}
	return allocations
}

// MenuItems returns the recognized menu item names, sorted.
func MenuItems() []string {
	names := make([]string, 0, len(menuItems))
	for name := range menuItems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clampInt(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
