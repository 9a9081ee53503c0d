package tables

import (
	"net/url"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Statuses lists the selectable statuses in display order.
var Statuses = []Status{StatusAvailable, StatusOccupied, StatusReserved}

// Bind reads a posted table form.
func Bind(form url.Values) Draft {
	return Draft{
		Number:   resource.FormValue(form, "number"),
		Capacity: resource.FormValue(form, "capacity"),
		Status:   resource.FormValue(form, "status"),
		QRCode:   resource.FormValue(form, "qrCode"),
	}
}

// Summary counts tables per status.
type Summary struct {
	Available int
	Occupied  int
	Reserved  int
	Seats     int
}

// Summarize counts the tables per status and the total seating capacity.
func Summarize(items []Table) Summary {
	var s Summary
	for _, t := range items {
		switch t.Status {
		case StatusOccupied:
			s.Occupied++
		case StatusReserved:
			s.Reserved++
		default:
			s.Available++
		}
		s.Seats += t.Capacity
	}
	return s
}
