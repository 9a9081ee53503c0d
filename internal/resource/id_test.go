package resource_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

func TestIDAcceptsStringsAndNumbers(t *testing.T) {
	var got struct {
		A resource.ID `json:"a"`
		B resource.ID `json:"b"`
		C resource.ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"u-1","b":42,"c":null}`), &got))
	assert.Equal(t, resource.ID("u-1"), got.A)
	assert.Equal(t, resource.ID("42"), got.B)
	assert.Equal(t, resource.ID(""), got.C)

	var bad resource.ID
	require.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestRefsNormalizesEmbeddedObjects(t *testing.T) {
	var refs resource.Refs
	raw := `["r1", 2, {"id":"r3","name":"Cajero"}, {"name":"no id"}, ""]`
	require.NoError(t, json.Unmarshal([]byte(raw), &refs))
	assert.Equal(t, []string{"r1", "2", "r3"}, refs.Strings())

	assert.Equal(t, resource.Refs{"a", "b"}, resource.RefsOf([]string{"a", "", "b"}))
}

func TestRefsResolveOmitsDangling(t *testing.T) {
	names := map[string]string{"r1": "Admin", "r2": "Cajero"}
	refs := resource.Refs{"r2", "gone", "r1"}
	assert.Equal(t, []string{"Cajero", "Admin"}, refs.Resolve(names))
	assert.True(t, refs.Has("gone"))
	assert.False(t, refs.Has("r3"))
}
