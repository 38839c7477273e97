package shopify

import (
	"context"
	"fmt"
	"strings"
)

const metafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields { id key value }
    userErrors { field message }
  }
}`

// UserError is one entry of a mutation's userErrors list.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrors is returned when Shopify accepted the request but rejected its
// input.
type UserErrors []UserError

func (e UserErrors) Error() string {
	msgs := make([]string, len(e))
	for i, u := range e {
		if len(u.Field) > 0 {
			msgs[i] = strings.Join(u.Field, ".") + ": " + u.Message
		} else {
			msgs[i] = u.Message
		}
	}
	return "shopify user errors: " + strings.Join(msgs, "; ")
}

// AdminClient writes to the store through the Admin GraphQL API.
type AdminClient struct {
	gql graphqlClient
}

// NewAdminClient targets https://{domain}/admin/api/{version}/graphql.json.
func NewAdminClient(domain, version, token string) *AdminClient {
	return NewAdminClientWithEndpoint(
		fmt.Sprintf("https://%s/admin/api/%s/graphql.json", domain, version), token)
}

func NewAdminClientWithEndpoint(endpoint, token string) *AdminClient {
	return &AdminClient{gql: graphqlClient{
		endpoint:    endpoint,
		tokenHeader: "X-Shopify-Access-Token",
		token:       token,
	}}
}

// SetMetafield sets a single_line_text_field metafield on ownerID (a gid such
// as gid://shopify/ProductVariant/123).
func (c *AdminClient) SetMetafield(ctx context.Context, ownerID, namespace, key, value string) error {
	vars := map[string]any{
		"metafields": []map[string]string{{
			"ownerId":   ownerID,
			"namespace": namespace,
			"key":       key,
			"value":     value,
			"type":      "single_line_text_field",
		}},
	}

	var resp metafieldsSetResponse
	if err := c.gql.do(ctx, metafieldsSetMutation, vars, &resp); err != nil {
		return fmt.Errorf("setting metafield %s.%s on %s: %w", namespace, key, ownerID, err)
	}
	if len(resp.MetafieldsSet.UserErrors) > 0 {
		return fmt.Errorf("setting metafield %s.%s on %s: %w", namespace, key, ownerID, resp.MetafieldsSet.UserErrors)
	}
	return nil
}
