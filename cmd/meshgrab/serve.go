package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kataras/meshgrab/internal/logging"
	"github.com/kataras/meshgrab/pkg/catalog"
	"github.com/kataras/meshgrab/pkg/objexport"
	"github.com/kataras/meshgrab/pkg/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		outputDir  string
		productURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept a live GL call stream and export requests from the in-page shim",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("out") {
				outputDir = cfg.Export.Dir
			}

			log, err := logging.Init(cfg.Logging.Level, cfg.Logging.File, cfg.Logging.Console)
			if err != nil {
				return err
			}

			opts := server.Options{
				Saver:          objexport.DirSaver{Dir: outputDir},
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Logger:         logging.Component("server"),
			}

			if productURL != "" {
				code, err := catalog.ExtractProductCode(productURL)
				if err != nil {
					return err
				}
				client := catalog.NewClient(cfg.Catalog.BaseURL)
				lookup := cfg.Catalog.Lookup
				opts.Metadata = func(ctx context.Context) *objexport.Metadata {
					if !lookup {
						return &objexport.Metadata{CatalogID: code}
					}
					meta, err := client.Metadata(ctx, code)
					if err != nil {
						log.WithError(err).Warn("catalog lookup failed")
						return &objexport.Metadata{CatalogID: code}
					}
					return meta
				}
			}

			srv, err := server.New(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.WithField("dir", outputDir).Info("exports will be written here")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8765", "Listen address")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "meshgrab-exports", "Output directory")
	cmd.Flags().StringVarP(&productURL, "product", "p", "", "LCSC product URL or code used for requests without metadata")

	return cmd
}
