// Package ordergen produces fake order data for seeding and exercising the
// pipeline. Generated files mirror production inputs: five columns, ids in the
// O0001 form, order dates spread over the trailing 90 days.
package ordergen

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/orderfilter"
)

var statuses = []string{"confirmed", "shipped", "pending", "cancelled"}

var customers = []string{"Alice", "Bob", "Charlie", "Diana", "Eve"}

// maxOrderAgeDays bounds how far back generated order dates go.
const maxOrderAgeDays = 90

type Generator struct {
	rand *rand.Rand
	now  time.Time
	seq  int
}

// New returns a generator seeded with seed; a fixed seed gives reproducible
// output. Order dates are generated relative to now.
func New(seed int64, now time.Time) *Generator {
	return &Generator{
		rand: rand.New(rand.NewSource(seed)),
		now:  now,
	}
}

// Next generates a single fake order. Order ids are sequential across calls.
func (g *Generator) Next() orderfilter.Order {
	g.seq++
	daysAgo := g.rand.Intn(maxOrderAgeDays + 1)
	amount := 10 + g.rand.Float64()*490
	return orderfilter.Order{
		OrderID:   fmt.Sprintf("O%04d", g.seq),
		Customer:  customers[g.rand.Intn(len(customers))],
		Amount:    fmt.Sprintf("%.2f", amount),
		Status:    statuses[g.rand.Intn(len(statuses))],
		OrderDate: g.now.AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour),
	}
}

// Orders generates num fake orders.
func (g *Generator) Orders(num int) []orderfilter.Order {
	orders := make([]orderfilter.Order, 0, num)
	for i := 0; i < num; i++ {
		orders = append(orders, g.Next())
	}
	return orders
}

// WriteCSV generates num fake orders and writes them as an orders CSV.
func (g *Generator) WriteCSV(w io.Writer, num int) error {
	if num <= 0 {
		return oops.Errorf("order count must be positive, got %d", num)
	}
	return orderfilter.Encode(w, g.Orders(num))
}
