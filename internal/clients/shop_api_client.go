package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"shop_client/internal/domain"
)

// OrderDocument is the wire shape of one order on the remote endpoint. The
// date travels as an ISO-8601 string; the caller parses it into a timestamp.
type OrderDocument struct {
	CartItems   []domain.CartItem `json:"cartItems"`
	TotalAmount float64           `json:"totalAmount"`
	Date        string            `json:"date"`
}

// ProductDocument is the wire shape of one product. Price and OwnerID are
// omitted when empty so that product updates never touch them.
type ProductDocument struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price,omitempty"`
	OwnerID     string  `json:"ownerId,omitempty"`
}

// createResponse is the endpoint's reply to a POST: the server-generated
// identifier under "name".
type createResponse struct {
	Name string `json:"name"`
}

// ShopAPIClient talks to the remote Firebase-style JSON endpoint. Every call
// is a single attempt; there is no retry or backoff.
type ShopAPIClient interface {
	FetchOrders(ctx context.Context, userID string) (map[string]OrderDocument, error)
	CreateOrder(ctx context.Context, userID string, doc OrderDocument) (string, error)
	FetchProducts(ctx context.Context) (map[string]ProductDocument, error)
	CreateProduct(ctx context.Context, doc ProductDocument) (string, error)
	UpdateProduct(ctx context.Context, productID string, updates map[string]interface{}) error
}

type shopHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewShopHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) ShopAPIClient {
	return &shopHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *shopHTTPClient) FetchOrders(ctx context.Context, userID string) (map[string]OrderDocument, error) {
	url := fmt.Sprintf("%s/orders/%s.json", c.baseURL, userID)
	c.log.Infof("ShopClient: Fetching orders for user '%s' from URL: %s", userID, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to create FetchOrders request for user '%s': %v", userID, err)
		return nil, fmt.Errorf("failed to create fetch orders request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to execute FetchOrders request for user '%s': %v", userID, err)
		return nil, &domain.NetworkError{Op: "fetch orders", Err: err}
	}
	defer resp.Body.Close()

	// On a non-success status the body is not read at all.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Errorf("ShopClient: FetchOrders for user '%s' failed with status %d", userID, resp.StatusCode)
		return nil, &domain.RemoteFetchError{Op: "fetch orders", StatusCode: resp.StatusCode}
	}

	// The endpoint answers "null" for a path that has never been written.
	var docs map[string]OrderDocument
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		c.log.Errorf("ShopClient: Failed to decode FetchOrders response for user '%s': %v", userID, err)
		return nil, fmt.Errorf("failed to decode orders response: %w", err)
	}
	if docs == nil {
		docs = map[string]OrderDocument{}
	}

	c.log.Infof("ShopClient: Fetched %d order documents for user '%s'", len(docs), userID)
	return docs, nil
}

func (c *shopHTTPClient) CreateOrder(ctx context.Context, userID string, doc OrderDocument) (string, error) {
	url := fmt.Sprintf("%s/orders/%s.json", c.baseURL, userID)
	c.log.Infof("ShopClient: Creating order for user '%s' (%d items, total %.2f)", userID, len(doc.CartItems), doc.TotalAmount)

	body, err := json.Marshal(doc)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to marshal order document for user '%s': %v", userID, err)
		return "", fmt.Errorf("failed to prepare order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		c.log.Errorf("ShopClient: Failed to create CreateOrder request for user '%s': %v", userID, err)
		return "", fmt.Errorf("failed to create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to execute CreateOrder request for user '%s': %v", userID, err)
		return "", &domain.NetworkError{Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Errorf("ShopClient: CreateOrder for user '%s' failed with status %d", userID, resp.StatusCode)
		return "", &domain.RemoteFetchError{Op: "create order", StatusCode: resp.StatusCode}
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		c.log.Errorf("ShopClient: Failed to decode CreateOrder response for user '%s': %v", userID, err)
		return "", fmt.Errorf("failed to decode create order response: %w", err)
	}

	c.log.Infof("ShopClient: Order created for user '%s' with server id '%s'", userID, created.Name)
	return created.Name, nil
}

func (c *shopHTTPClient) FetchProducts(ctx context.Context) (map[string]ProductDocument, error) {
	url := fmt.Sprintf("%s/products.json", c.baseURL)
	c.log.Infof("ShopClient: Fetching products from URL: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to create FetchProducts request: %v", err)
		return nil, fmt.Errorf("failed to create fetch products request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to execute FetchProducts request: %v", err)
		return nil, &domain.NetworkError{Op: "fetch products", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Errorf("ShopClient: FetchProducts failed with status %d", resp.StatusCode)
		return nil, &domain.RemoteFetchError{Op: "fetch products", StatusCode: resp.StatusCode}
	}

	var docs map[string]ProductDocument
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		c.log.Errorf("ShopClient: Failed to decode FetchProducts response: %v", err)
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}
	if docs == nil {
		docs = map[string]ProductDocument{}
	}

	c.log.Infof("ShopClient: Fetched %d product documents", len(docs))
	return docs, nil
}

func (c *shopHTTPClient) CreateProduct(ctx context.Context, doc ProductDocument) (string, error) {
	url := fmt.Sprintf("%s/products.json", c.baseURL)
	c.log.Infof("ShopClient: Creating product '%s' (price %.2f)", doc.Title, doc.Price)

	body, err := json.Marshal(doc)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to marshal product document '%s': %v", doc.Title, err)
		return "", fmt.Errorf("failed to prepare product payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		c.log.Errorf("ShopClient: Failed to create CreateProduct request: %v", err)
		return "", fmt.Errorf("failed to create product request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to execute CreateProduct request: %v", err)
		return "", &domain.NetworkError{Op: "create product", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Errorf("ShopClient: CreateProduct failed with status %d", resp.StatusCode)
		return "", &domain.RemoteFetchError{Op: "create product", StatusCode: resp.StatusCode}
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		c.log.Errorf("ShopClient: Failed to decode CreateProduct response: %v", err)
		return "", fmt.Errorf("failed to decode create product response: %w", err)
	}

	c.log.Infof("ShopClient: Product '%s' created with server id '%s'", doc.Title, created.Name)
	return created.Name, nil
}

func (c *shopHTTPClient) UpdateProduct(ctx context.Context, productID string, updates map[string]interface{}) error {
	url := fmt.Sprintf("%s/products/%s.json", c.baseURL, productID)
	c.log.Infof("ShopClient: Updating product '%s' (%d fields)", productID, len(updates))

	body, err := json.Marshal(updates)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to marshal updates for product '%s': %v", productID, err)
		return fmt.Errorf("failed to prepare product update payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(body))
	if err != nil {
		c.log.Errorf("ShopClient: Failed to create UpdateProduct request for '%s': %v", productID, err)
		return fmt.Errorf("failed to create product update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to execute UpdateProduct request for '%s': %v", productID, err)
		return &domain.NetworkError{Op: "update product", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Errorf("ShopClient: UpdateProduct for '%s' failed with status %d", productID, resp.StatusCode)
		return &domain.RemoteFetchError{Op: "update product", StatusCode: resp.StatusCode}
	}

	c.log.Infof("ShopClient: Product '%s' updated successfully", productID)
	return nil
}
