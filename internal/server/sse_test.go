package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEWriter_Events(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := NewSSEWriter(w)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("changed", map[string]string{"key": "companies"}))
	require.NoError(t, sse.WriteComment("ping"))
	require.NoError(t, sse.WriteError(droppedMessage))

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t,
		"event: changed\ndata: {\"key\":\"companies\"}\n\n"+
			": ping\n\n"+
			"event: error\ndata: {\"error\":\"changes were dropped, reload state\"}\n\n",
		w.Body.String())
	assert.True(t, w.Flushed)
}
