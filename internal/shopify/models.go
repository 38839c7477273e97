package shopify

// Product is a Storefront product with its variants flattened out of the
// connection edges.
type Product struct {
	ID              string
	Title           string
	Handle          string
	Description     string
	DescriptionHTML string
	Variants        []Variant
}

type Variant struct {
	ID    string
	Title string
	Price Money
}

// Money is a decimal amount as Shopify sends it, e.g. {"amount":"49.90"}.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// DefaultVariantTitle is the title Shopify gives the only variant of a
// product without options.
const DefaultVariantTitle = "Default Title"

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type productsResponse struct {
	Products struct {
		PageInfo pageInfo `json:"pageInfo"`
		Edges    []struct {
			Node productNode `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

type productNode struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Handle          string `json:"handle"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"descriptionHtml"`
	Variants        struct {
		Edges []struct {
			Node struct {
				ID    string `json:"id"`
				Title string `json:"title"`
				Price Money  `json:"price"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (n productNode) product() Product {
	p := Product{
		ID:              n.ID,
		Title:           n.Title,
		Handle:          n.Handle,
		Description:     n.Description,
		DescriptionHTML: n.DescriptionHTML,
	}
	for _, e := range n.Variants.Edges {
		p.Variants = append(p.Variants, Variant{ID: e.Node.ID, Title: e.Node.Title, Price: e.Node.Price})
	}
	return p
}

type metafieldsSetResponse struct {
	MetafieldsSet struct {
		UserErrors UserErrors `json:"userErrors"`
	} `json:"metafieldsSet"`
}
