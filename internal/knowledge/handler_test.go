package knowledge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/executivedriving/concierge/pkg/logging"
)

func TestHandlerListAndReset(t *testing.T) {
	store := NewMemoryStore()
	h := NewHandler(store, logging.New("error"))

	require.NoError(t, store.Learn(t.Context(), "do you allow pets", "yes"))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/kb", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listBody struct {
		Items []Entry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listBody))
	assert.Len(t, listBody.Items, len(Seed)+1)

	rec = httptest.NewRecorder()
	h.Reset(rec, httptest.NewRequest(http.MethodPost, "/kb/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)

	entries, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, entries, len(Seed))
}
