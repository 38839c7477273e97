// Package catalogsync mirrors the Shopify catalog into Whop and links the
// two back together through variant metafields.
package catalogsync

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mirrow/internal/formatter"
	"mirrow/internal/observability"
	"mirrow/internal/shopify"
	"mirrow/internal/whop"
)

const whopDescriptionLength = 1000

type ProductSource interface {
	Products(ctx context.Context, pageSize int, fn func(shopify.Product) error) error
}

type WhopCatalog interface {
	CreateProduct(ctx context.Context, title, description string) (whop.Product, error)
	CreatePlan(ctx context.Context, in whop.PlanInput) (whop.Plan, error)
}

// Summary counts what a sync run created.
type Summary struct {
	Products int
	Plans    int
	Failed   int
}

// Syncer creates one Whop product per Shopify product and one plan per
// variant, writing a MATCH line to Log for every plan.
type Syncer struct {
	Source   ProductSource
	Whop     WhopCatalog
	Log      io.Writer
	PageSize int
	Logger   *zap.Logger
}

func (s *Syncer) Run(ctx context.Context) (Summary, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var sum Summary
	err := s.Source.Products(ctx, s.PageSize, func(p shopify.Product) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("[Sync] processing product", zap.String("title", p.Title))

		plans, err := s.syncProduct(ctx, p)
		sum.Plans += plans
		if err != nil {
			sum.Failed++
			logger.Error("[Sync] failed to process product",
				zap.String("product_id", p.ID), zap.String("title", p.Title), zap.Error(err))
			return nil
		}
		sum.Products++
		return nil
	})
	if err != nil {
		return sum, fmt.Errorf("reading shopify products: %w", err)
	}

	logger.Info("[Sync] finished",
		zap.Int("products", sum.Products), zap.Int("plans", sum.Plans), zap.Int("failed", sum.Failed))
	return sum, nil
}

// syncProduct returns how many plans it created before any error.
func (s *Syncer) syncProduct(ctx context.Context, p shopify.Product) (int, error) {
	raw := p.DescriptionHTML
	if strings.TrimSpace(raw) == "" {
		raw = p.Description
	}
	description := formatter.ShortDescription(raw, p.Title, whopDescriptionLength)

	product, err := s.Whop.CreateProduct(ctx, p.Title, description)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, v := range p.Variants {
		price, err := strconv.ParseFloat(v.Price.Amount, 64)
		if err != nil {
			return created, fmt.Errorf("variant %s: invalid price %q: %w", v.ID, v.Price.Amount, err)
		}

		plan, err := s.Whop.CreatePlan(ctx, whop.PlanInput{
			ProductID:   product.ID,
			Title:       planTitle(p.Title, v.Title),
			Description: "Variant: " + v.Title,
			Currency:    strings.ToLower(v.Price.CurrencyCode),
			Price:       price,
		})
		if err != nil {
			return created, err
		}
		created++
		observability.WhopPlansCreated.Inc()

		if s.Log != nil {
			if _, err := fmt.Fprintln(s.Log, Match{VariantID: v.ID, PlanID: plan.ID}); err != nil {
				return created, fmt.Errorf("writing sync log: %w", err)
			}
		}
	}
	return created, nil
}

func planTitle(productTitle, variantTitle string) string {
	if variantTitle == shopify.DefaultVariantTitle {
		return productTitle
	}
	return productTitle + " - " + variantTitle
}
