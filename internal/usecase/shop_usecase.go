package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
	"shop_client/internal/form"
	"shop_client/internal/store"
)

// ShopUseCase reconciles the shared application store with the remote
// endpoint: full-replace reads, incremental appends on writes.
type ShopUseCase interface {
	FetchOrders(ctx context.Context) ([]domain.Order, error)
	PlaceOrder(ctx context.Context) (*domain.Order, error)
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	SubmitProductForm(ctx context.Context, productID string, f form.State) (*domain.Product, error)
	AddToCart(productID string, quantity int) error
	RemoveFromCart(productID string)
}

type shopUseCase struct {
	client clients.ShopAPIClient
	store  *store.Store
	userID string
	log    *logrus.Logger
}

func NewShopUseCase(client clients.ShopAPIClient, st *store.Store, userID string, logger *logrus.Logger) ShopUseCase {
	return &shopUseCase{
		client: client,
		store:  st,
		userID: userID,
		log:    logger,
	}
}

// FetchOrders reads the full order history and replaces the store's order
// collection wholesale. A failed fetch or an unparseable payload leaves the
// existing collection untouched.
func (uc *shopUseCase) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	uc.log.Infof("Use Case: Fetching orders for user '%s'", uc.userID)

	docs, err := uc.client.FetchOrders(ctx, uc.userID)
	if err != nil {
		uc.log.Warnf("Use Case: Fetch orders failed for user '%s': %v", uc.userID, err)
		return nil, err
	}

	orders := make([]domain.Order, 0, len(docs))
	for id, doc := range docs {
		date, err := time.Parse(time.RFC3339, doc.Date)
		if err != nil {
			uc.log.Errorf("Use Case: Order '%s' carries an unparseable date '%s': %v", id, doc.Date, err)
			return nil, fmt.Errorf("order %s: invalid date %q: %w", id, doc.Date, err)
		}
		orders = append(orders, domain.Order{
			ID:          id,
			Items:       doc.CartItems,
			TotalAmount: doc.TotalAmount,
			Date:        date,
		})
	}

	uc.store.Apply(store.OrdersReplaced{Orders: orders})
	uc.log.Infof("Use Case: Order collection replaced with %d orders for user '%s'", len(orders), uc.userID)
	return orders, nil
}

// PlaceOrder submits the current cart as a new order. The cart must be
// non-empty; the check happens before any network traffic. On success the
// order is appended to the store with the server-assigned identifier and the
// cart is cleared.
func (uc *shopUseCase) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	items := uc.store.CartItems()
	if len(items) == 0 {
		uc.log.Warn("Use Case: Place order rejected - cart is empty")
		return nil, domain.ErrEmptyCart
	}
	total := uc.store.CartTotal()
	date := time.Now().UTC().Truncate(time.Second)

	uc.log.Infof("Use Case: Placing order for user '%s' (%d lines, total %.2f)", uc.userID, len(items), total)

	name, err := uc.client.CreateOrder(ctx, uc.userID, clients.OrderDocument{
		CartItems:   items,
		TotalAmount: total,
		Date:        date.Format(time.RFC3339),
	})
	if err != nil {
		uc.log.Errorf("Use Case: Create order failed for user '%s': %v", uc.userID, err)
		return nil, err
	}

	order := domain.Order{
		ID:          name,
		Items:       items,
		TotalAmount: total,
		Date:        date,
	}
	uc.store.Apply(store.OrderAdded{Order: order})
	uc.log.Infof("Use Case: Order '%s' appended for user '%s', cart cleared", order.ID, uc.userID)
	return &order, nil
}

// FetchProducts reads the product catalog and replaces the store's product
// collection wholesale.
func (uc *shopUseCase) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	uc.log.Info("Use Case: Fetching product catalog")

	docs, err := uc.client.FetchProducts(ctx)
	if err != nil {
		uc.log.Warnf("Use Case: Fetch products failed: %v", err)
		return nil, err
	}

	products := make([]domain.Product, 0, len(docs))
	for id, doc := range docs {
		products = append(products, domain.Product{
			ID:          id,
			OwnerID:     doc.OwnerID,
			Title:       doc.Title,
			Description: doc.Description,
			ImageURL:    doc.ImageURL,
			Price:       doc.Price,
		})
	}

	uc.store.Apply(store.ProductsReplaced{Products: products})
	uc.log.Infof("Use Case: Product collection replaced with %d products", len(products))
	return products, nil
}

// SubmitProductForm turns a validated form into a create or update call. An
// invalid form fails locally and never reaches the network layer. An empty
// productID means create (the price field is included); otherwise the
// product is updated in place, price untouched.
func (uc *shopUseCase) SubmitProductForm(ctx context.Context, productID string, f form.State) (*domain.Product, error) {
	if !f.Valid {
		uc.log.Warnf("Use Case: Product form submission rejected - form is not valid (product '%s')", productID)
		return nil, domain.ErrFormInvalid
	}

	title := f.Values[form.FieldTitle]
	description := f.Values[form.FieldDescription]
	imageURL := f.Values[form.FieldImageURL]

	if productID == "" {
		price, err := strconv.ParseFloat(f.Values[form.FieldPrice], 64)
		if err != nil {
			uc.log.Errorf("Use Case: Product form price '%s' did not parse: %v", f.Values[form.FieldPrice], err)
			return nil, fmt.Errorf("invalid price %q: %w", f.Values[form.FieldPrice], err)
		}

		uc.log.Infof("Use Case: Creating product '%s' for owner '%s'", title, uc.userID)
		name, err := uc.client.CreateProduct(ctx, clients.ProductDocument{
			Title:       title,
			Description: description,
			ImageURL:    imageURL,
			Price:       price,
			OwnerID:     uc.userID,
		})
		if err != nil {
			uc.log.Errorf("Use Case: Create product '%s' failed: %v", title, err)
			return nil, err
		}

		product := domain.Product{
			ID:          name,
			OwnerID:     uc.userID,
			Title:       title,
			Description: description,
			ImageURL:    imageURL,
			Price:       price,
		}
		uc.store.Apply(store.ProductAdded{Product: product})
		uc.log.Infof("Use Case: Product '%s' created with id '%s'", title, name)
		return &product, nil
	}

	uc.log.Infof("Use Case: Updating product '%s'", productID)
	err := uc.client.UpdateProduct(ctx, productID, map[string]interface{}{
		"title":       title,
		"description": description,
		"imageUrl":    imageURL,
	})
	if err != nil {
		uc.log.Errorf("Use Case: Update product '%s' failed: %v", productID, err)
		return nil, err
	}

	product, ok := uc.store.Product(productID)
	if !ok {
		product = domain.Product{ID: productID, OwnerID: uc.userID}
	}
	product.Title = title
	product.Description = description
	product.ImageURL = imageURL

	uc.store.Apply(store.ProductUpdated{Product: product})
	uc.log.Infof("Use Case: Product '%s' updated in place", productID)
	return &product, nil
}

// AddToCart puts quantity units of a catalog product into the cart. The
// product must already be in the store.
func (uc *shopUseCase) AddToCart(productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	product, ok := uc.store.Product(productID)
	if !ok {
		uc.log.Warnf("Use Case: Add to cart failed - product '%s' not in catalog", productID)
		return fmt.Errorf("product %q not found in catalog", productID)
	}
	uc.store.Apply(store.CartItemAdded{Product: product, Quantity: quantity})
	uc.log.Infof("Use Case: Added %d x '%s' to cart", quantity, product.Title)
	return nil
}

// RemoveFromCart takes one unit of a product out of the cart.
func (uc *shopUseCase) RemoveFromCart(productID string) {
	uc.store.Apply(store.CartItemRemoved{ProductID: productID})
	uc.log.Infof("Use Case: Removed one unit of product '%s' from cart", productID)
}
