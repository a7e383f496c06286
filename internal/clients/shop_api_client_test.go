package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_client/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(url string) ShopAPIClient {
	return NewShopHTTPClient(url, 2*time.Second, testLogger())
}

func TestFetchOrdersRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/u1.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"k1": {"cartItems": [{"productId": "p1", "quantity": 2, "price": 21}], "totalAmount": 42, "date": "2021-01-01T00:00:00Z"}}`)
	}))
	defer srv.Close()

	docs, err := newTestClient(srv.URL).FetchOrders(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc, ok := docs["k1"]
	require.True(t, ok)
	assert.InDelta(t, 42, doc.TotalAmount, 1e-9)
	assert.Equal(t, "2021-01-01T00:00:00Z", doc.Date)
	require.Len(t, doc.CartItems, 1)
	assert.Equal(t, "p1", doc.CartItems[0].ProductID)
}

func TestFetchOrdersEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	docs, err := newTestClient(srv.URL).FetchOrders(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFetchOrdersNullBody(t *testing.T) {
	// A path that has never been written answers "null".
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `null`)
	}))
	defer srv.Close()

	docs, err := newTestClient(srv.URL).FetchOrders(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestFetchOrdersNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchOrders(context.Background(), "u1")
	require.Error(t, err)

	var fetchErr *domain.RemoteFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
}

func TestFetchOrdersTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).FetchOrders(context.Background(), "u1")
	require.Error(t, err)

	var netErr *domain.NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestCreateOrderReturnsServerName(t *testing.T) {
	var gotBody OrderDocument
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/u1.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"name": "-Nabc123"}`)
	}))
	defer srv.Close()

	doc := OrderDocument{
		CartItems:   []domain.CartItem{{ProductID: "p1", Quantity: 2, Price: 5}},
		TotalAmount: 10,
		Date:        "2021-01-01T00:00:00Z",
	}
	name, err := newTestClient(srv.URL).CreateOrder(context.Background(), "u1", doc)
	require.NoError(t, err)
	assert.Equal(t, "-Nabc123", name)
	assert.InDelta(t, 10, gotBody.TotalAmount, 1e-9)
	assert.Equal(t, "2021-01-01T00:00:00Z", gotBody.Date)
}

func TestCreateOrderNonSuccessStatusPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateOrder(context.Background(), "u1", OrderDocument{})
	require.Error(t, err)

	var fetchErr *domain.RemoteFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
}

func TestUpdateProductSendsPatchWithoutPrice(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"title": "Armchair"}`)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UpdateProduct(context.Background(), "p1", map[string]interface{}{
		"title":       "Armchair",
		"description": "Now with arms",
		"imageUrl":    "http://example.com/armchair.png",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/products/p1.json", gotPath)
	assert.NotContains(t, gotBody, "price")
}

func TestFetchProductsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).FetchProducts(ctx)
	require.Error(t, err)

	var netErr *domain.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.ErrorIs(t, err, context.Canceled)
}
