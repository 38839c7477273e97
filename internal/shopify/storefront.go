package shopify

import (
	"context"
	"fmt"
)

const (
	defaultPageSize = 50
	maxPageSize     = 250
	variantsPerPage = 100
)

const productsQuery = `
query Products($first: Int!, $after: String, $variants: Int!) {
  products(first: $first, after: $after) {
    pageInfo { hasNextPage endCursor }
    edges {
      node {
        id
        title
        handle
        description
        descriptionHtml
        variants(first: $variants) {
          edges { node { id title price { amount currencyCode } } }
        }
      }
    }
  }
}`

// StorefrontClient reads the public catalog.
type StorefrontClient struct {
	gql graphqlClient
}

// NewStorefrontClient targets https://{domain}/api/{version}/graphql.json.
func NewStorefrontClient(domain, version, token string) *StorefrontClient {
	return NewStorefrontClientWithEndpoint(
		fmt.Sprintf("https://%s/api/%s/graphql.json", domain, version), token)
}

func NewStorefrontClientWithEndpoint(endpoint, token string) *StorefrontClient {
	return &StorefrontClient{gql: graphqlClient{
		endpoint:    endpoint,
		tokenHeader: "X-Shopify-Storefront-Access-Token",
		token:       token,
	}}
}

// Products walks every product page and calls fn for each product. It stops
// at the first error returned by fn.
func (c *StorefrontClient) Products(ctx context.Context, pageSize int, fn func(Product) error) error {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var cursor *string
	for {
		vars := map[string]any{"first": pageSize, "after": cursor, "variants": variantsPerPage}

		var page productsResponse
		if err := c.gql.do(ctx, productsQuery, vars, &page); err != nil {
			return fmt.Errorf("fetching products page: %w", err)
		}

		for _, e := range page.Products.Edges {
			if err := fn(e.Node.product()); err != nil {
				return err
			}
		}

		info := page.Products.PageInfo
		if !info.HasNextPage || info.EndCursor == "" {
			return nil
		}
		next := info.EndCursor
		cursor = &next
	}
}

// AllProducts collects every product into a slice.
func (c *StorefrontClient) AllProducts(ctx context.Context, pageSize int) ([]Product, error) {
	var all []Product
	err := c.Products(ctx, pageSize, func(p Product) error {
		all = append(all, p)
		return nil
	})
	return all, err
}
