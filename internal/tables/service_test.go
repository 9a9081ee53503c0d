package tables_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/gateway"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	"github.com/odyssey-erp/odyssey-pos/internal/tables"
	"github.com/odyssey-erp/odyssey-pos/internal/testing/backend"
)

func newController(t *testing.T, items ...map[string]any) (*tables.Controller, *backend.Server) {
	t.Helper()
	srv := backend.New(t)
	srv.Collection(tables.Path, "m", items...)
	return tables.NewController(gateway.New(gateway.Config{BaseURL: srv.URL}), nil), srv
}

func TestCreateDefaultsStatusAndQRCode(t *testing.T) {
	ctrl, srv := newController(t)
	require.NoError(t, ctrl.Create(context.Background(), tables.Bind(url.Values{"number": {"7"}, "capacity": {"4"}})))

	reqs := srv.Requests()
	require.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/mesas", reqs[0].Path)
	assert.Equal(t, map[string]any{"number": float64(7), "capacity": float64(4), "status": "available", "qrCode": "QR_7"}, reqs[0].Body)

	items := ctrl.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, tables.Table{ID: "m1", Number: 7, Capacity: 4, Status: tables.StatusAvailable, QRCode: "QR_7"}, items[0])
	assert.Equal(t, `Delete table "Table 7"?`, ctrl.Prompt("m1"))
}

func TestUnknownStatusIsRejectedLocally(t *testing.T) {
	ctrl, srv := newController(t)
	err := ctrl.Create(context.Background(), tables.Bind(url.Values{"number": {"1"}, "capacity": {"2"}, "status": {"broken"}}))
	require.ErrorIs(t, err, resource.ErrValidation)
	assert.Equal(t, "Status must be one of available occupied reserved", ctrl.Notice(resource.OpCreate, err))
	assert.Empty(t, srv.Requests())
}

func TestSummarize(t *testing.T) {
	s := tables.Summarize([]tables.Table{
		{Capacity: 4, Status: tables.StatusAvailable},
		{Capacity: 2, Status: tables.StatusOccupied},
		{Capacity: 6, Status: tables.StatusReserved},
		{Capacity: 4, Status: tables.StatusOccupied},
	})
	assert.Equal(t, tables.Summary{Available: 1, Occupied: 2, Reserved: 1, Seats: 16}, s)
	assert.Equal(t, "Occupied", tables.StatusOccupied.Label())
}
