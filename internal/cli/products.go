package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type productSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Handle   string `json:"handle,omitempty"`
	Variants int    `json:"variants,omitempty"`
}

func newProductsCommand(a *app) *cobra.Command {
	var (
		fromWhop bool
		limit    int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the Shopify catalog, or the Whop one with --whop, without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var list []productSummary
			if fromWhop {
				wc, err := a.whopClient()
				if err != nil {
					return err
				}
				products, err := wc.ListProducts(cmd.Context(), limit)
				if err != nil {
					return err
				}
				for _, p := range products {
					title := p.Title
					if title == "" {
						title = p.Name
					}
					list = append(list, productSummary{ID: p.ID, Title: title})
				}
			} else {
				sf, err := a.storefront()
				if err != nil {
					return err
				}
				products, err := sf.AllProducts(cmd.Context(), pageSize)
				if err != nil {
					return err
				}
				for _, p := range products {
					list = append(list, productSummary{ID: p.ID, Title: p.Title, Handle: p.Handle, Variants: len(p.Variants)})
				}
			}

			a.logger.Info("[Products] listed", zap.Int("count", len(list)), zap.Bool("whop", fromWhop))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		},
	}
	cmd.Flags().BoolVar(&fromWhop, "whop", false, "List Whop products instead of Shopify ones")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum Whop products to list")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "Products per Storefront page")
	return cmd
}
