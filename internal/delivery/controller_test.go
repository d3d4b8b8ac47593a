package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
)

type fakeQuoter struct {
	quote  *domain.DeliveryQuote
	err    error
	coords domain.Coordinates
}

func (f *fakeQuoter) RequestQuote(ctx context.Context, coords domain.Coordinates) (*domain.DeliveryQuote, error) {
	f.coords = coords
	return f.quote, f.err
}

func postQuote(t *testing.T, quoter Quoter, body string) *httptest.ResponseRecorder {
	t.Helper()
	ctrl := NewController(quoter, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/delivery/quote", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	ctrl.Quote(rec, req)
	return rec
}

func TestQuote_Success(t *testing.T) {
	quoter := &fakeQuoter{quote: &domain.DeliveryQuote{
		DistanceKm:      4.2,
		Price:           8.0,
		ResolvedAddress: "Rua das Gaivotas, 55",
	}}

	rec := postQuote(t, quoter, `{"latitude":-20.46,"longitude":-54.61}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, 4.2, resp["distance"])
	assert.Equal(t, 8.0, resp["price"])
	assert.Equal(t, "Rua das Gaivotas, 55", resp["address"])

	assert.Equal(t, -20.46, quoter.coords.Lat)
	assert.Equal(t, -54.61, quoter.coords.Lng)
}

func TestQuote_MissingCoordinates(t *testing.T) {
	rec := postQuote(t, &fakeQuoter{}, `{"latitude":-20.46}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Coordenadas não fornecidas")
}

func TestQuote_DomainFailureKeepsReason(t *testing.T) {
	quoter := &fakeQuoter{err: apperrors.NewQuoteError("Endereço fora da área de entrega")}

	rec := postQuote(t, quoter, `{"latitude":-20.46,"longitude":-54.61}`)

	require.Equal(t, http.StatusOK, rec.Code)

	// A quoted refusal travels as a successful call with the error
	// field set; the storefront keys off the error field.
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Endereço fora da área de entrega", resp["error"])
}

func TestQuote_TransportFailureIsGeneric(t *testing.T) {
	quoter := &fakeQuoter{err: apperrors.NewInternalError("delivery service unreachable", nil)}

	rec := postQuote(t, quoter, `{"latitude":-20.46,"longitude":-54.61}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao calcular valor da entrega")
	assert.NotContains(t, rec.Body.String(), "unreachable")
}
