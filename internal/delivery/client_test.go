package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zap.NewNop())
}

func TestRequestQuote_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"distance":3.42,"price":7.50,"address":"Rua das Flores, 100"}`))
	})

	quote, err := c.RequestQuote(context.Background(), domain.Coordinates{Lat: -25.09, Lng: -50.16})
	require.NoError(t, err)
	assert.InDelta(t, 3.42, quote.DistanceKm, 1e-9)
	assert.InDelta(t, 7.50, quote.Price, 1e-9)
	assert.Equal(t, "Rua das Flores, 100", quote.ResolvedAddress)
	assert.InDelta(t, -25.09, quote.Source.Lat, 1e-9)
}

func TestRequestQuote_SuccessTrueWithErrorIsQuoteFailure(t *testing.T) {
	// The collaborator reports out-of-radius as success=true plus an
	// error string. That must land on the quote-failure path, not the
	// transport one.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"error":"Endereço fora da área de entrega"}`))
	})

	quote, err := c.RequestQuote(context.Background(), domain.Coordinates{})
	require.Error(t, err)
	assert.Nil(t, quote)

	qe, ok := apperrors.IsQuoteError(err)
	require.True(t, ok)
	assert.Equal(t, "Endereço fora da área de entrega", qe.Reason)
}

func TestRequestQuote_SuccessFalse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"geocoding failed"}`))
	})

	_, err := c.RequestQuote(context.Background(), domain.Coordinates{})
	require.Error(t, err)

	qe, ok := apperrors.IsQuoteError(err)
	require.True(t, ok)
	assert.Equal(t, "geocoding failed", qe.Reason)
}

func TestRequestQuote_SuccessFalseWithoutReason(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})

	_, err := c.RequestQuote(context.Background(), domain.Coordinates{})
	require.Error(t, err)

	qe, ok := apperrors.IsQuoteError(err)
	require.True(t, ok)
	assert.NotEmpty(t, qe.Reason)
}

func TestRequestQuote_ServerErrorIsTransportFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.RequestQuote(context.Background(), domain.Coordinates{})
	require.Error(t, err)

	_, ok := apperrors.IsQuoteError(err)
	assert.False(t, ok)
}

func TestRequestQuote_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1/quote", 200*time.Millisecond, zap.NewNop())

	_, err := c.RequestQuote(context.Background(), domain.Coordinates{})
	require.Error(t, err)

	_, ok := apperrors.IsQuoteError(err)
	assert.False(t, ok)
}

func TestRequestQuote_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"success":true}`},
		{"negative distance", `{"success":true,"distance":-1,"price":5.0}`},
		{"negative price", `{"success":true,"distance":2.0,"price":-5.0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := c.RequestQuote(context.Background(), domain.Coordinates{})
			require.Error(t, err)
			_, ok := apperrors.IsQuoteError(err)
			assert.False(t, ok)
		})
	}
}
