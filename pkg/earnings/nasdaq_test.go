package earnings

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"$2.04", "2.04"},
		{"2.04", "2.04"},
		{"($0.13)", "-0.13"},
		{"$1,204.50", "1204.50"},
	}
	for _, tc := range cases {
		got := parseMoney(tc.raw)
		require.NotNil(t, got, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got.String(), "raw %q", tc.raw)
	}

	assert.Nil(t, parseMoney(""))
	assert.Nil(t, parseMoney("N/A"))
}

func TestFetchFeedDayRepairsSloppyJSON(t *testing.T) {
	// Trailing comma: invalid for encoding/json, recoverable by the
	// repair pass.
	payload := `{"data":{"rows":[{"symbol":"aapl","name":"Apple Inc.","time":"time-after-hours","eps":"$2.10"},]}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	service := NewService(zap.NewNop())
	service.FeedURL = server.URL

	rows, err := service.fetchFeedDay(zap.NewNop(), time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, "Apple Inc.", rows[0].Company)
	require.NotNil(t, rows[0].EPS)
	assert.Equal(t, "2.10", rows[0].EPS.String())
}

func TestFetchFeedDayErrors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		service := NewService(zap.NewNop())
		service.FeedURL = server.URL

		_, err := service.fetchFeedDay(zap.NewNop(), time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})

	t.Run("unrepairable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>blocked</html>`))
		}))
		defer server.Close()

		service := NewService(zap.NewNop())
		service.FeedURL = server.URL

		_, err := service.fetchFeedDay(zap.NewNop(), time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})

	t.Run("empty payload is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":null}`))
		}))
		defer server.Close()

		service := NewService(zap.NewNop())
		service.FeedURL = server.URL

		rows, err := service.fetchFeedDay(zap.NewNop(), time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("blank symbols dropped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"rows":[{"symbol":"  ","name":"Ghost Co"},{"symbol":"msft","name":"Microsoft"}]}}`))
		}))
		defer server.Close()

		service := NewService(zap.NewNop())
		service.FeedURL = server.URL

		rows, err := service.fetchFeedDay(zap.NewNop(), time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "MSFT", rows[0].Symbol)
	})
}
