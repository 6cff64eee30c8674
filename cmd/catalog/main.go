// Command catalog lists products from the remote store on the terminal,
// useful for checking credentials and the catalog filter syntax without
// starting the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"reelcraft-storefront/internal/config"
	"reelcraft-storefront/internal/domain"
	"reelcraft-storefront/internal/shopify"
)

func main() {
	var (
		limit  int
		query  string
		handle string
	)
	flag.IntVar(&limit, "limit", 20, "Number of products to fetch")
	flag.StringVar(&query, "query", "", "Catalog filter, e.g. 'product_type:Jewellery Box'")
	flag.StringVar(&handle, "handle", "", "Fetch a single product by handle instead")
	flag.Parse()

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	client := shopify.New(shopify.Config{
		StoreDomain:     cfg.StoreDomain,
		StorefrontToken: cfg.StorefrontToken,
		APIVersion:      cfg.APIVersion,
		Timeout:         cfg.RequestTimeout,
	})
	ctx := context.Background()

	if handle != "" {
		product, err := client.ProductByHandle(ctx, handle)
		if err != nil {
			log.Fatalf("fetch product %q: %v", handle, err)
		}
		printProduct(*product)
		return
	}

	products, err := client.Products(ctx, limit, query)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	if len(products) == 0 {
		fmt.Println("no products matched")
		os.Exit(0)
	}
	for _, p := range products {
		printProduct(p)
	}
}

func printProduct(p domain.Product) {
	fmt.Printf("%s  %s (%s %s)\n", p.Handle, p.Title, p.MinPrice.Amount, p.MinPrice.CurrencyCode)
	for _, v := range p.Variants {
		status := "available"
		if !v.AvailableForSale {
			status = "sold out"
		}
		fmt.Printf("    %-40s %s %s  [%s]\n", v.Title, v.Price.Amount, v.Price.CurrencyCode, status)
	}
}
