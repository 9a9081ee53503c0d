package categories_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/gateway"
	"github.com/odyssey-erp/odyssey-pos/internal/masterdata/categories"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	"github.com/odyssey-erp/odyssey-pos/internal/testing/backend"
)

var confirm = resource.ConfirmFunc(func(context.Context, string) bool { return true })

// Create Bebidas, then try to delete it while products still point at it.
func TestDeleteCategoryWithProducts(t *testing.T) {
	srv := backend.New(t)
	srv.Collection(categories.Path, "c")
	ctrl := categories.NewController(gateway.New(gateway.Config{BaseURL: srv.URL}), nil)
	require.NoError(t, ctrl.Load(context.Background()))

	require.NoError(t, ctrl.Create(context.Background(), categories.Bind(url.Values{"name": {"Bebidas"}})))
	want := []categories.Category{{ID: "c1", Name: "Bebidas"}}
	assert.Equal(t, want, ctrl.Snapshot().Items)
	assert.Equal(t, "Category created", categories.Definition().SuccessNotice(resource.OpCreate))

	srv.Fail(http.MethodDelete, categories.Path+"/c1", backend.Failure{Status: http.StatusConflict})
	err := ctrl.Delete(context.Background(), "c1", confirm)
	require.Error(t, err)

	var conflict *resource.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Could not delete category: it likely has dependent products", ctrl.Notice(resource.OpDelete, err))
	assert.Equal(t, want, ctrl.Snapshot().Items)
}

func TestDeleteUnreferencedCategory(t *testing.T) {
	srv := backend.New(t)
	srv.Collection(categories.Path, "c",
		map[string]any{"id": "c1", "name": "Bebidas"},
		map[string]any{"id": "c2", "name": "Postres"},
	)
	ctrl := categories.NewController(gateway.New(gateway.Config{BaseURL: srv.URL}), nil)
	require.NoError(t, ctrl.Load(context.Background()))

	require.NoError(t, ctrl.Delete(context.Background(), "c2", confirm))
	assert.Equal(t, []categories.Category{{ID: "c1", Name: "Bebidas"}}, ctrl.Snapshot().Items)
	assert.Len(t, srv.Items(categories.Path), 1)
}
