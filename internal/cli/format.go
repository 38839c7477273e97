package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mirrow/internal/crawler"
	"mirrow/internal/formatter"
)

func newFormatCommand() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Print the structured record of a description as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(formatter.Format(raw, title))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Product title, used for the fallback description")
	return cmd
}

func newShortCommand() *cobra.Command {
	var (
		title     string
		maxLength int
	)
	cmd := &cobra.Command{
		Use:   "short [file|-]",
		Short: "Print the product-card description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatter.ShortDescription(raw, title, maxLength))
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Product title, used for the fallback description")
	cmd.Flags().IntVar(&maxLength, "max", formatter.DefaultShortLength, "Maximum length in characters")
	return cmd
}

type pageResult struct {
	URL   string                         `json:"url"`
	Title string                         `json:"title"`
	Data  formatter.FormattedProductData `json:"data"`
}

func newPageCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "page <url>...",
		Short: "Fetch product pages and print their formatted descriptions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return crawler.CrawlPages(cmd.Context(), args, a.logger, func(p crawler.Page) error {
				return enc.Encode(pageResult{
					URL:   p.URL,
					Title: p.Title,
					Data:  formatter.Format(p.DescriptionHTML, p.Title),
				})
			})
		},
	}
}
