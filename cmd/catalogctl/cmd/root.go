package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/annai/backend/internal/infrastructure/logger"
	"github.com/annai/backend/internal/infrastructure/pool"
	"github.com/annai/backend/internal/usecase"
)

// options are the persistent flags shared by every subcommand
type options struct {
	dir          string
	prefixLength int
	publicPath   string
	logLevel     string
}

// NewRootCmd builds the catalogctl command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "catalogctl",
		Short:        "catalogctl - offline brand catalog tool",
		Long:         "Resolve queries, inspect brand selections and list templates of a product image pool.",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dir, "dir", "static/products", "template pool directory")
	flags.IntVar(&opts.prefixLength, "prefix", usecase.DefaultPrefixLength, "filename prefix length stripped from labels")
	flags.StringVar(&opts.publicPath, "public-path", "static/products/", "public path prepended to image filenames")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newQueryCmd(opts))
	rootCmd.AddCommand(newSelectCmd(opts))
	rootCmd.AddCommand(newTemplatesCmd(opts))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadService scans the pool directory and builds an uncached catalog service
func (o *options) loadService() (*usecase.CatalogService, error) {
	zapLogger, err := logger.New(o.logLevel, "console")
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	files, err := pool.NewScanner(pool.ImageMeasurer{}, zapLogger).Scan(o.dir)
	if err != nil {
		return nil, err
	}

	templates := usecase.NewTemplatePool(files, usecase.PoolOptions{
		PrefixLength: o.prefixLength,
		PublicPath:   o.publicPath,
	})
	zapLogger.Debug("template pool loaded", zap.String("dir", o.dir), zap.Int("templates", templates.Len()))

	resolver := usecase.NewResolver(templates, zapLogger)
	return usecase.NewCatalogService(resolver, nil, usecase.CatalogServiceConfig{}, zapLogger), nil
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
