package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"shop_client/config"
	"shop_client/internal/clients"
	"shop_client/internal/form"
	"shop_client/internal/store"
	"shop_client/internal/usecase"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	cfg := config.LoadConfig(logger)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)

	client := clients.NewShopHTTPClient(cfg.ShopAPIURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, logger)
	appStore := store.NewStore()
	shop := usecase.NewShopUseCase(client, appStore, cfg.UserID, logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTPTimeoutSeconds+5)*time.Second)
	defer cancel()

	var cmdErr error
	switch os.Args[1] {
	case "products":
		cmdErr = runProducts(ctx, shop)
	case "orders":
		cmdErr = runOrders(ctx, shop)
	case "checkout":
		cmdErr = runCheckout(ctx, shop, os.Args[2:])
	case "create-product":
		cmdErr = runCreateProduct(ctx, shop, os.Args[2:])
	case "update-product":
		cmdErr = runUpdateProduct(ctx, shop, appStore, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: shopctl <command> [flags]

Commands:
  products                          list the product catalog
  orders                            list the order history
  checkout <productID=qty> [...]    place an order for the given products
  create-product -title ... -description ... -image-url ... -price ...
  update-product -id ... [-title ...] [-description ...] [-image-url ...]`)
}

func runProducts(ctx context.Context, shop usecase.ShopUseCase) error {
	products, err := shop.FetchProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("No products available.")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%s  %-20s  %8.2f  %s\n", p.ID, p.Title, p.Price, p.Description)
	}
	return nil
}

func runOrders(ctx context.Context, shop usecase.ShopUseCase) error {
	orders, err := shop.FetchOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%s  %s  total %8.2f\n", o.ID, o.Date.Format(time.RFC3339), o.TotalAmount)
		for _, item := range o.Items {
			fmt.Printf("    %d x %-20s @ %.2f\n", item.Quantity, item.ProductTitle, item.Price)
		}
	}
	return nil
}

func runCheckout(ctx context.Context, shop usecase.ShopUseCase, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("checkout needs at least one productID=qty argument")
	}
	// The cart lives in the shared store; resolve product references first.
	if _, err := shop.FetchProducts(ctx); err != nil {
		return err
	}
	for _, arg := range args {
		productID, qtyStr, found := strings.Cut(arg, "=")
		qty := 1
		if found {
			n, err := strconv.Atoi(qtyStr)
			if err != nil {
				return fmt.Errorf("invalid quantity in %q: %w", arg, err)
			}
			qty = n
		}
		if err := shop.AddToCart(productID, qty); err != nil {
			return err
		}
	}
	order, err := shop.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Order placed: %s (total %.2f)\n", order.ID, order.TotalAmount)
	return nil
}

func runCreateProduct(ctx context.Context, shop usecase.ShopUseCase, args []string) error {
	fs := flag.NewFlagSet("create-product", flag.ExitOnError)
	title := fs.String("title", "", "product title")
	description := fs.String("description", "", "product description")
	imageURL := fs.String("image-url", "", "product image URL")
	price := fs.String("price", "", "product price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := form.NewCreateProductForm()
	state = form.ChangeField(state, form.ProductRules, form.FieldTitle, *title)
	state = form.ChangeField(state, form.ProductRules, form.FieldDescription, *description)
	state = form.ChangeField(state, form.ProductRules, form.FieldImageURL, *imageURL)
	state = form.ChangeField(state, form.ProductRules, form.FieldPrice, *price)

	if !state.Valid {
		return formError(state)
	}

	product, err := shop.SubmitProductForm(ctx, "", state)
	if err != nil {
		return err
	}
	fmt.Printf("Product created: %s\n", product.ID)
	return nil
}

func runUpdateProduct(ctx context.Context, shop usecase.ShopUseCase, appStore *store.Store, args []string) error {
	fs := flag.NewFlagSet("update-product", flag.ExitOnError)
	id := fs.String("id", "", "product ID")
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	imageURL := fs.String("image-url", "", "new image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("update-product requires -id")
	}

	if _, err := shop.FetchProducts(ctx); err != nil {
		return err
	}
	product, ok := appStore.Product(*id)
	if !ok {
		return fmt.Errorf("product %q not found in catalog", *id)
	}

	state := form.NewEditProductForm(product)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			state = form.ChangeField(state, form.ProductRules, form.FieldTitle, *title)
		case "description":
			state = form.ChangeField(state, form.ProductRules, form.FieldDescription, *description)
		case "image-url":
			state = form.ChangeField(state, form.ProductRules, form.FieldImageURL, *imageURL)
		}
	})

	if !state.Valid {
		return formError(state)
	}

	updated, err := shop.SubmitProductForm(ctx, *id, state)
	if err != nil {
		return err
	}
	fmt.Printf("Product updated: %s\n", updated.ID)
	return nil
}

func formError(state form.State) error {
	invalid := make([]string, 0, len(state.Validities))
	for field, ok := range state.Validities {
		if !ok {
			invalid = append(invalid, field)
		}
	}
	return fmt.Errorf("please check the errors in the form (invalid fields: %s)", strings.Join(invalid, ", "))
}
