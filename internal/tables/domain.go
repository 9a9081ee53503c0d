package tables

import "github.com/odyssey-erp/odyssey-pos/internal/resource"

// Status is the occupancy state of a dining table.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusReserved  Status = "reserved"
)

// Label returns the display text for a status.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusOccupied:
		return "Occupied"
	case StatusReserved:
		return "Reserved"
	}
	return "Unknown"
}

// Table is a dining table in the restaurant.
type Table struct {
	ID       resource.ID `json:"id"`
	Number   int         `json:"number"`
	Capacity int         `json:"capacity"`
	Status   Status      `json:"status"`
	QRCode   string      `json:"qrCode"`
}

// Draft is the editable form of a Table.
type Draft struct {
	Number   string `form:"number" label:"Number" validate:"required"`
	Capacity string `form:"capacity" label:"Capacity" validate:"required"`
	Status   string `form:"status" label:"Status" validate:"omitempty,oneof=available occupied reserved"`
	QRCode   string `form:"qrCode"`
}
