package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mirrow/internal/catalogsync"
	"mirrow/internal/shopify"
	"mirrow/internal/whop"
)

func (a *app) whopClient() (*whop.Client, error) {
	if a.cfg.WhopAPIKey == "" {
		return nil, errors.New("WHOP_API_KEY is not set")
	}
	return whop.NewClient(a.cfg.WhopBaseURL, a.cfg.WhopAPIKey, a.cfg.WhopCompanyID), nil
}

func (a *app) syncLog(override string) string {
	if override != "" {
		return override
	}
	return a.cfg.SyncLogPath
}

func (a *app) readMatches(path string) ([]catalogsync.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sync log (run sync-whop first): %w", err)
	}
	defer f.Close()

	matches, err := catalogsync.ReadMatches(f)
	if err != nil {
		return nil, err
	}
	a.logger.Info("[Sync] read sync log", zap.String("path", path), zap.Int("matches", len(matches)))
	return matches, nil
}

func newSyncWhopCommand(a *app) *cobra.Command {
	var (
		logPath  string
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "sync-whop",
		Short: "Create a Whop product and plans for every Shopify product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, err := a.storefront()
			if err != nil {
				return err
			}
			wc, err := a.whopClient()
			if err != nil {
				return err
			}
			if wc.CompanyID == "" {
				return errors.New("WHOP_COMPANY_ID is not set")
			}

			path := a.syncLog(logPath)
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("opening sync log: %w", err)
			}
			defer f.Close()

			s := &catalogsync.Syncer{
				Source:   sf,
				Whop:     wc,
				Log:      io.MultiWriter(f, cmd.OutOrStdout()),
				PageSize: pageSize,
				Logger:   a.logger,
			}
			sum, err := s.Run(cmd.Context())
			if err != nil {
				return err
			}
			if sum.Failed > 0 {
				return fmt.Errorf("%d products failed to sync", sum.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&logPath, "log", "", "Sync log path (overrides SYNC_LOG_PATH)")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "Products per Storefront page")
	return cmd
}

func newUpdateMetafieldsCommand(a *app) *cobra.Command {
	var (
		logPath string
		delay   = catalogsync.DefaultDelay
	)
	cmd := &cobra.Command{
		Use:   "update-metafields",
		Short: "Store each synced Whop plan id on its Shopify variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.ShopifyStoreDomain == "" || a.cfg.ShopifyAdminToken == "" {
				return errors.New("SHOPIFY_STORE_DOMAIN and SHOPIFY_ADMIN_TOKEN must be set")
			}
			matches, err := a.readMatches(a.syncLog(logPath))
			if err != nil {
				return err
			}

			u := &catalogsync.MetafieldUpdater{
				Admin:  shopify.NewAdminClient(a.cfg.ShopifyStoreDomain, a.cfg.ShopifyAdminVersion, a.cfg.ShopifyAdminToken),
				Delay:  delay,
				Logger: a.logger,
			}
			counts, err := u.Run(cmd.Context(), matches)
			a.logger.Info("[Metafields] finished", zap.Int("updated", counts.Succeeded), zap.Int("failed", counts.Failed))
			return err
		},
	}
	cmd.Flags().StringVar(&logPath, "log", "", "Sync log path (overrides SYNC_LOG_PATH)")
	cmd.Flags().DurationVar(&delay, "delay", delay, "Pause between Admin API calls")
	return cmd
}

func newFixPlansCommand(a *app) *cobra.Command {
	var (
		logPath string
		delay   = catalogsync.DefaultDelay
	)
	cmd := &cobra.Command{
		Use:   "fix-plans",
		Short: "Turn the synced renewal plans into one-time plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wc, err := a.whopClient()
			if err != nil {
				return err
			}
			matches, err := a.readMatches(a.syncLog(logPath))
			if err != nil {
				return err
			}

			f := &catalogsync.PlanFixer{Whop: wc, Delay: delay, Logger: a.logger}
			counts, err := f.Run(cmd.Context(), catalogsync.PlanIDs(matches))
			a.logger.Info("[Plans] finished", zap.Int("fixed", counts.Succeeded), zap.Int("failed", counts.Failed))
			return err
		},
	}
	cmd.Flags().StringVar(&logPath, "log", "", "Sync log path (overrides SYNC_LOG_PATH)")
	cmd.Flags().DurationVar(&delay, "delay", delay, "Pause between Whop API calls")
	return cmd
}
