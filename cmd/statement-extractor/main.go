package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/ledgerline/statement-extractor/internal/api"
	"github.com/ledgerline/statement-extractor/internal/config"
	"github.com/ledgerline/statement-extractor/internal/service"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "statement-extractor",
	})

	var cfgFile string

	root := &cobra.Command{
		Use:          "statement-extractor",
		Short:        "Extract structured transactions from bank statements",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default statement-extractor.yaml)")

	extract := &cobra.Command{
		Use:   "extract <dir>",
		Short: "Extract transactions from all statements under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			processor, err := service.New(logger, cfg)
			if err != nil {
				return err
			}
			return processor.Run(args[0])
		},
	}
	extract.Flags().String("output-dir", ".", "directory for transactions.json and transactions.csv")
	extract.Flags().String("rules-file", "", "YAML file with categorization rules")

	reexport := &cobra.Command{
		Use:   "reexport",
		Short: "Rewrite the export files from the saved transaction history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			processor, err := service.New(logger, cfg)
			if err != nil {
				return err
			}
			return processor.Reexport()
		},
	}
	reexport.Flags().String("output-dir", ".", "directory for transactions.json and transactions.csv")
	reexport.Flags().String("rules-file", "", "YAML file with categorization rules")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload-and-convert HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			processor, err := service.New(logger, cfg)
			if err != nil {
				return err
			}
			app := fiber.New()
			api.NewHandler(logger, processor).Register(app)
			logger.Info("listening", "addr", cfg.ListenAddr)
			return app.Listen(cfg.ListenAddr)
		},
	}
	serve.Flags().String("listen-addr", ":3000", "address to listen on")

	root.AddCommand(extract, reexport, serve)
	if err := root.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}
