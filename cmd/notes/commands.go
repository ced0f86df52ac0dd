package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clinicprime/notelens/config"
	"github.com/clinicprime/notelens/internal/catalog"
	"github.com/clinicprime/notelens/internal/domain"
	"github.com/clinicprime/notelens/internal/infrastructure/sheet"
	"github.com/clinicprime/notelens/internal/usecase"
)

// rootOptions are the flags shared by every subcommand
type rootOptions struct {
	catalogPath string
	threshold   int
	logLevel    string
	cfg         *config.Config
}

// loadConfig reads the shared configuration; explicit flags win over it
func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	o.cfg = cfg

	if !cmd.Flags().Changed("catalog") {
		o.catalogPath = cfg.Catalog.Path
	}
	if !cmd.Flags().Changed("threshold") {
		o.threshold = cfg.Resolver.ProximityThreshold
	} else if o.threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got: %d", o.threshold)
	}
	return nil
}

// NewRootCmd creates the notes command with all subcommands.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "notes",
		Short: "Resolve clinical treatment notes into brands, services and consumption events",
		Long: `Resolve free-text clinical treatment notes against a rule catalog.

Each note yields the canonical brands and services it mentions plus the
consumption events (brand, service, quantity, unit) that inventory and
billing records are built from.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Rule catalog YAML file (default built-in catalog)")
	root.PersistentFlags().IntVar(&opts.threshold, "threshold", usecase.DefaultProximityThreshold, "Maximum brand to quantity distance in characters")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newBatchCmd(opts))
	root.AddCommand(newCatalogCmd(opts))

	return root
}

// build loads the catalog and wires a note service without a cache
func (o *rootOptions) build() (*usecase.NoteService, *zap.SugaredLogger, error) {
	logger, err := config.NewLogger(config.LogConfig{Level: o.logLevel}, "development")
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Load(o.catalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	resolver := usecase.NewResolver(cat, usecase.ResolverConfig{
		ProximityThreshold: o.threshold,
		Logger:             logger.Named("resolver"),
	})
	notes := usecase.NewNoteService(nil, resolver, usecase.NoteServiceConfig{Logger: logger.Named("notes")})
	return notes, logger, nil
}

// newResolveCmd creates the 'resolve' subcommand
func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [text...]",
		Short: "Resolve one note",
		Long:  "Resolve the note given as arguments (joined with spaces) or, without arguments, read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _, err := opts.build()
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = strings.TrimSpace(string(data))
			}

			result, err := notes.ResolveNote(cmd.Context(), &domain.ResolveRequest{Text: text})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

// newBatchCmd creates the 'batch' subcommand
func newBatchCmd(opts *rootOptions) *cobra.Command {
	var (
		file     string
		columns  []string
		idColumn string
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Resolve every note of a CSV or XLSX export",
		Long:  "Resolve every row of a spreadsheet export and print one JSON line per note, in file order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			notes, logger, err := opts.build()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !cmd.Flags().Changed("columns") {
				columns = opts.cfg.Resolver.SourceFields
			}
			if !cmd.Flags().Changed("workers") {
				workers = opts.cfg.Batch.Workers
			}

			batch := usecase.NewBatchService(notes, usecase.BatchConfig{
				Workers: workers,
				Logger:  logger.Named("batch"),
			})

			items, err := batch.ResolveSource(ctx, sheet.NewReader(file, columns, idColumn))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, item := range items {
				if err := enc.Encode(item); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX file with one note per row")
	cmd.Flags().StringSliceVar(&columns, "columns", []string{"tratamiento", "notas"}, "Source columns concatenated in order (default from config)")
	cmd.Flags().StringVar(&idColumn, "id-column", "id", "Column identifying each note (row number when absent)")
	cmd.Flags().IntVar(&workers, "workers", 8, "Parallel resolutions (default from config)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// newCatalogCmd creates the 'catalog' subcommand group
func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate rule catalogs",
	}
	cmd.AddCommand(newCatalogValidateCmd())
	cmd.AddCommand(newCatalogShowCmd(opts))
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a catalog file and report whether it is valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d brands, %d services\n",
				len(cat.Brands()), len(cat.ServicePriority()))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Catalog YAML file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newCatalogShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the brands, service priority and generic brands of the active catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(opts.catalogPath)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cat.Describe())
		},
	}
}
