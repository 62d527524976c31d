// Command paladinoctl runs maintenance tasks against the content API and
// the local inquiry archive.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/paladino/propiedades-web/internal/config"
	"github.com/paladino/propiedades-web/internal/gateway"
	"github.com/paladino/propiedades-web/internal/logger"
	"github.com/paladino/propiedades-web/internal/sitemap"
	"github.com/paladino/propiedades-web/internal/storage"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:          "paladinoctl",
		Short:        "Maintenance tasks for the Paladino Propiedades web backend",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			logger.Init(logger.Config{Level: cfg.LogLevel, Output: "stderr", Pretty: true})
		},
	}

	root.AddCommand(newSitemapCmd(&cfg), newInquiriesCmd(&cfg))
	return root
}

func newSitemapCmd(cfg **config.Config) *cobra.Command {
	var (
		baseURL string
		output  string
		key     string
		timeout time.Duration
	)

	build := func(ctx context.Context) ([]byte, error) {
		c := *cfg
		if baseURL == "" {
			baseURL = c.SiteURL
		}
		set, err := sitemap.NewBuilder(gateway.New(c.GatewayOptions())).Build(ctx, baseURL)
		if err != nil {
			return nil, err
		}
		return set.Encode()
	}

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Build or publish sitemap.xml",
	}
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "public site origin (default SITE_URL)")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline")

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Write sitemap.xml to stdout or a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			body, err := build(ctx)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(output, body, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			logger.Get().Info().Str("path", output).Int("bytes", len(body)).Msg("Sitemap written")
			return nil
		},
	}
	generate.Flags().StringVarP(&output, "output", "o", "", "destination file, stdout when empty")

	publish := &cobra.Command{
		Use:   "publish",
		Short: "Upload sitemap.xml to the R2 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c := *cfg
			body, err := build(ctx)
			if err != nil {
				return err
			}
			pub, err := sitemap.NewR2Publisher(ctx, sitemap.R2Config{
				Endpoint:  c.R2Endpoint,
				AccountID: c.R2AccountID,
				AccessKey: c.R2AccessKey,
				SecretKey: c.R2SecretKey,
				Bucket:    c.R2Bucket,
			})
			if err != nil {
				return err
			}
			if key == "" {
				key = c.SitemapKey
			}
			if err := pub.Publish(ctx, key, body); err != nil {
				return err
			}
			logger.Get().Info().Str("bucket", c.R2Bucket).Str("key", key).Msg("Sitemap published")
			return nil
		},
	}
	publish.Flags().StringVar(&key, "key", "", "object key (default SITEMAP_KEY)")

	cmd.AddCommand(generate, publish)
	return cmd
}

func newInquiriesCmd(cfg **config.Config) *cobra.Command {
	var page, pageSize int

	open := func() (*storage.Storage, error) {
		return storage.NewStorage((*cfg).InquiryPath)
	}

	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "Inspect archived contact inquiries",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List inquiries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			items, err := store.ListInquiries(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\t%-9s\t%s <%s>\t%s\n",
					it.ID, it.ReceivedAt.Format(time.DateTime), it.Status, it.Nombre, it.Email, it.TipoLabel)
			}
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&pageSize, "page-size", 20, "items per page")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one inquiry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			it, err := store.GetInquiry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(it)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
