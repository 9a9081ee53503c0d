package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		title  string
	}{
		{fmt.Errorf("screen kitchen: %w", ErrNotFound), http.StatusNotFound, "Not Found"},
		{ErrConflict, http.StatusConflict, "Conflict"},
		{ErrValidation, http.StatusBadRequest, "Validation Failed"},
		{ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "Internal Error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		require.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var problem ProblemDetail
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
		assert.Equal(t, tc.title, problem.Title)
		assert.Equal(t, tc.status, problem.Status)
	}
}
