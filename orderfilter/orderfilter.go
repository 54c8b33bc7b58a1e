// Package orderfilter implements the order retention filter: given a CSV of
// orders, it drops orders that are stale (pending or cancelled for 30 days or
// more) and passes everything else through unchanged.
package orderfilter

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/samsarahq/go/oops"
)

// DateFormat is the only accepted layout for the OrderDate column.
const DateFormat = "2006-01-02"

// RetentionWindow is how long a pending or cancelled order survives before the
// filter drops it.
const RetentionWindow = 30 * 24 * time.Hour

// Header is the required CSV header, in column order.
var Header = []string{"OrderID", "Customer", "Amount", "Status", "OrderDate"}

// staleStatuses are the statuses subject to the retention window. Matching is
// case-insensitive after trimming surrounding whitespace.
var staleStatuses = map[string]bool{
	"pending":   true,
	"cancelled": true,
}

// Order is one row of an orders CSV. Fields are carried verbatim so that kept
// rows round-trip byte for byte; only OrderDate is parsed.
type Order struct {
	OrderID   string
	Customer  string
	Amount    string
	Status    string
	OrderDate time.Time
}

// Result is the outcome of one filtering pass. Total == len(Kept) + Filtered.
type Result struct {
	// Kept holds the surviving orders in their original input order.
	Kept []Order

	// Total is the number of rows evaluated.
	Total int

	// Filtered is the number of rows dropped.
	Filtered int
}

// Decode reads an orders CSV. Decoding is strict: the header must name exactly
// the five expected columns, every row must carry all five fields, and any
// unparseable date fails the whole document. There is no per-row tolerance.
func Decode(r io.Reader) ([]Order, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, oops.Errorf("empty input: missing header row")
	}
	if err != nil {
		return nil, oops.Wrapf(err, "reading header row")
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var orders []Order
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, oops.Wrapf(err, "row %d: reading record", row)
		}

		order, err := decodeRecord(record)
		if err != nil {
			return nil, oops.Wrapf(err, "row %d", row)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func checkHeader(header []string) error {
	if len(header) != len(Header) {
		return oops.Errorf("header has %d columns, want %d (%s)", len(header), len(Header), strings.Join(Header, ","))
	}
	for i, name := range header {
		if strings.TrimSpace(name) != Header[i] {
			return oops.Errorf("header column %d is %q, want %q", i+1, name, Header[i])
		}
	}
	return nil
}

func decodeRecord(record []string) (Order, error) {
	// csv.Reader already enforces a consistent field count against the header,
	// so a short record never reaches this point.
	if strings.TrimSpace(record[3]) == "" {
		return Order{}, oops.Errorf("missing status field")
	}

	rawDate := strings.TrimSpace(record[4])
	if rawDate == "" {
		return Order{}, oops.Errorf("missing order date field")
	}
	orderDate, err := time.Parse(DateFormat, rawDate)
	if err != nil {
		return Order{}, oops.Wrapf(err, "invalid order date %q", record[4])
	}

	return Order{
		OrderID:   record[0],
		Customer:  record[1],
		Amount:    record[2],
		Status:    record[3],
		OrderDate: orderDate,
	}, nil
}

// Filter applies the retention predicate to orders in a single forward pass.
// An order is kept unless its status is pending or cancelled and its date is
// 30 or more days before now. Input order is preserved.
func Filter(orders []Order, now time.Time) Result {
	cutoff := now.Add(-RetentionWindow)

	result := Result{Total: len(orders)}
	for _, order := range orders {
		if isStale(order, cutoff) {
			result.Filtered++
			continue
		}
		result.Kept = append(result.Kept, order)
	}
	return result
}

// isStale reports whether order is dropped: a stale status whose date does not
// fall strictly after the cutoff.
func isStale(order Order, cutoff time.Time) bool {
	status := strings.ToLower(strings.TrimSpace(order.Status))
	return staleStatuses[status] && !order.OrderDate.After(cutoff)
}

// Encode writes orders as CSV with the standard header and column order.
func Encode(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return oops.Wrapf(err, "writing header row")
	}
	for _, order := range orders {
		record := []string{
			order.OrderID,
			order.Customer,
			order.Amount,
			order.Status,
			order.OrderDate.Format(DateFormat),
		}
		if err := cw.Write(record); err != nil {
			return oops.Wrapf(err, "writing order %s", order.OrderID)
		}
	}
	cw.Flush()
	return oops.Wrapf(cw.Error(), "flushing output")
}
