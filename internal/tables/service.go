package tables

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Path is the backend collection path.
const Path = "/mesas"

// Controller mirrors the tables collection.
type Controller = resource.Controller[Table, Draft]

// Definition describes tables to the generic controller.
func Definition() resource.Definition[Table, Draft] {
	return resource.Definition[Table, Draft]{
		Name:   "tables",
		Noun:   "table",
		Plural: "tables",
		Path:   Path,
		ID:     func(t Table) string { return t.ID.String() },
		Label:  func(t Table) string { return fmt.Sprintf("Table %d", t.Number) },
		Blank:  func() Draft { return Draft{Status: string(StatusAvailable)} },
		Edit: func(t Table) Draft {
			return Draft{
				Number:   strconv.Itoa(t.Number),
				Capacity: strconv.Itoa(t.Capacity),
				Status:   string(t.Status),
				QRCode:   t.QRCode,
			}
		},
		Encode: encode,
	}
}

// NewController builds the tables controller.
func NewController(client resource.Doer, logger *slog.Logger) *Controller {
	return resource.New(Definition(), client, logger)
}

func encode(d Draft) (resource.Payload, error) {
	var c resource.Coercer
	number := c.Int("Number", d.Number)
	capacity := c.Int("Capacity", d.Capacity)
	if err := c.Err(); err != nil {
		return nil, err
	}
	status := d.Status
	if status == "" {
		status = string(StatusAvailable)
	}
	qr := d.QRCode
	if qr == "" {
		qr = "QR_" + strconv.Itoa(number)
	}
	return resource.Payload{
		"number":   number,
		"capacity": capacity,
		"status":   status,
		"qrCode":   qr,
	}, nil
}
