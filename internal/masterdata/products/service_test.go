package products_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/gateway"
	"github.com/odyssey-erp/odyssey-pos/internal/masterdata/products"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	"github.com/odyssey-erp/odyssey-pos/internal/testing/backend"
)

func newController(t *testing.T, items ...map[string]any) (*products.Controller, *backend.Server) {
	t.Helper()
	srv := backend.New(t)
	srv.Collection(products.Path, "p", items...)
	return products.NewController(gateway.New(gateway.Config{BaseURL: srv.URL}), nil), srv
}

func TestDecodeAcceptsStringPriceAndEmbeddedCategory(t *testing.T) {
	var p products.Product
	raw := `{"id":3,"name":"Limonada","price":"12.50","stock":8,"category":{"id":"c1","name":"Bebidas"}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, products.Product{ID: "3", Name: "Limonada", Price: 12.5, Stock: 8, CategoryID: "c1"}, p)
}

func TestCreateCoercesNumbers(t *testing.T) {
	ctrl, srv := newController(t)
	form := url.Values{"name": {"Limonada"}, "price": {"12.5"}, "stock": {"8"}, "categoryId": {"c1"}}
	require.NoError(t, ctrl.Create(context.Background(), products.Bind(form)))

	for _, r := range srv.Requests() {
		if r.Method == http.MethodPost {
			assert.Equal(t, 12.5, r.Body["price"])
			assert.Equal(t, float64(8), r.Body["stock"])
			assert.Equal(t, "c1", r.Body["categoryId"])
		}
	}
	items := ctrl.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, 12.5, items[0].Price)
	assert.Equal(t, 8, items[0].Stock)
}

func TestCreateRejectsNonNumericPriceWithoutNetwork(t *testing.T) {
	ctrl, srv := newController(t)
	form := url.Values{"name": {"Limonada"}, "price": {"doce"}, "stock": {"8.5"}}
	err := ctrl.Create(context.Background(), products.Bind(form))
	require.ErrorIs(t, err, resource.ErrValidation)
	assert.Equal(t, "Price must be a number; Stock must be a whole number", ctrl.Notice(resource.OpCreate, err))
	assert.Empty(t, srv.Requests())
}

func TestUpdateOnlyChangedStock(t *testing.T) {
	ctrl, srv := newController(t, map[string]any{"id": "p1", "name": "Limonada", "price": 12.5, "stock": 8, "description": "", "categoryId": "c1"})
	require.NoError(t, ctrl.Load(context.Background()))

	dialog := resource.NewDialog(ctrl)
	require.NoError(t, dialog.OpenEdit("p1"))
	draft := dialog.Draft()
	assert.Equal(t, "12.5", draft.Price)
	draft.Stock = "5"
	dialog.SetDraft(draft)
	require.NoError(t, dialog.Submit(context.Background()))

	for _, r := range srv.Requests() {
		if r.Method == http.MethodPatch {
			assert.Equal(t, map[string]any{"stock": float64(5)}, r.Body)
		}
	}
	item, _ := ctrl.Find("p1")
	assert.Equal(t, 5, item.Stock)
}

func TestGroupsByCategoryName(t *testing.T) {
	items := []products.Product{
		{ID: "1", Name: "Limonada", CategoryID: "c1"},
		{ID: "2", Name: "Flan", CategoryID: "c2"},
		{ID: "3", Name: "Mystery", CategoryID: "gone"},
		{ID: "4", Name: "Agua", CategoryID: "c1"},
		{ID: "5", Name: "Pan"},
	}
	groups := products.Groups(items, map[string]string{"c1": "Bebidas", "c2": "Postres"})
	require.Len(t, groups, 3)
	assert.Equal(t, "Bebidas", groups[0].Category)
	assert.Len(t, groups[0].Products, 2)
	assert.Equal(t, "Postres", groups[1].Category)
	assert.Equal(t, products.Uncategorized, groups[2].Category)
	assert.Len(t, groups[2].Products, 2)
}
