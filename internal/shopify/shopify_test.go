package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRequest(t *testing.T, r *http.Request) graphqlRequest {
	t.Helper()
	var req graphqlRequest
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req
}

func TestStorefrontClient_Products_Paginates(t *testing.T) {
	var cursors []any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sf-token", r.Header.Get("X-Shopify-Storefront-Access-Token"))
		req := decodeRequest(t, r)
		cursors = append(cursors, req.Variables["after"])
		assert.Equal(t, float64(variantsPerPage), req.Variables["variants"])
		assert.Equal(t, float64(1), req.Variables["first"])

		if req.Variables["after"] == nil {
			fmt.Fprint(w, `{"data":{"products":{
				"pageInfo":{"hasNextPage":true,"endCursor":"c1"},
				"edges":[{"node":{"id":"gid://shopify/Product/1","title":"Round Mirror","handle":"round-mirror",
					"description":"Material: Glass","descriptionHtml":"<p>Material: Glass</p>",
					"variants":{"edges":[{"node":{"id":"gid://shopify/ProductVariant/11","title":"Default Title",
						"price":{"amount":"49.90","currencyCode":"USD"}}}]}}}]}}}`)
			return
		}
		fmt.Fprint(w, `{"data":{"products":{
			"pageInfo":{"hasNextPage":false,"endCursor":"c2"},
			"edges":[{"node":{"id":"gid://shopify/Product/2","title":"Square Mirror","variants":{"edges":[]}}}]}}}`)
	}))
	defer srv.Close()

	c := NewStorefrontClientWithEndpoint(srv.URL, "sf-token")
	products, err := c.AllProducts(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, []any{nil, "c1"}, cursors)
	assert.Equal(t, "Round Mirror", products[0].Title)
	assert.Equal(t, "<p>Material: Glass</p>", products[0].DescriptionHTML)
	require.Len(t, products[0].Variants, 1)
	assert.Equal(t, Money{Amount: "49.90", CurrencyCode: "USD"}, products[0].Variants[0].Price)
	assert.Empty(t, products[1].Variants)
}

func TestStorefrontClient_Products_StopsOnCallbackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"products":{"pageInfo":{"hasNextPage":true,"endCursor":"c1"},
			"edges":[{"node":{"id":"1"}},{"node":{"id":"2"}}]}}}`)
	}))
	defer srv.Close()

	stop := errors.New("stop")
	seen := 0
	err := NewStorefrontClientWithEndpoint(srv.URL, "t").Products(context.Background(), 10, func(Product) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestStorefrontClient_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewStorefrontClientWithEndpoint(srv.URL, "t").AllProducts(context.Background(), 10)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "invalid token", statusErr.Body)
}

func TestAdminClient_SetMetafield(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "admin-token", r.Header.Get("X-Shopify-Access-Token"))
		req := decodeRequest(t, r)
		fields := req.Variables["metafields"].([]any)
		require.Len(t, fields, 1)
		assert.Equal(t, map[string]any{
			"ownerId":   "gid://shopify/ProductVariant/11",
			"namespace": "custom",
			"key":       "whop_plan_id",
			"value":     "plan_abc",
			"type":      "single_line_text_field",
		}, fields[0])
		fmt.Fprint(w, `{"data":{"metafieldsSet":{"metafields":[{"id":"m1"}],"userErrors":[]}}}`)
	}))
	defer srv.Close()

	c := NewAdminClientWithEndpoint(srv.URL, "admin-token")
	err := c.SetMetafield(context.Background(), "gid://shopify/ProductVariant/11", "custom", "whop_plan_id", "plan_abc")
	assert.NoError(t, err)
}

func TestAdminClient_SetMetafield_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, err error)
	}{
		{
			name: "top level errors",
			body: `{"errors":[{"message":"Access denied"}]}`,
			check: func(t *testing.T, err error) {
				var gqlErr *GraphQLError
				require.ErrorAs(t, err, &gqlErr)
				assert.Equal(t, []string{"Access denied"}, gqlErr.Messages)
			},
		},
		{
			name: "user errors",
			body: `{"data":{"metafieldsSet":{"userErrors":[{"field":["metafields","0","value"],"message":"is invalid"}]}}}`,
			check: func(t *testing.T, err error) {
				var userErrs UserErrors
				require.ErrorAs(t, err, &userErrs)
				require.Len(t, userErrs, 1)
				assert.Contains(t, err.Error(), "metafields.0.value: is invalid")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			err := NewAdminClientWithEndpoint(srv.URL, "t").SetMetafield(context.Background(), "gid", "custom", "k", "v")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
