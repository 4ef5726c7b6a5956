package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/ledgeru/pkg/config"
	"github.com/yurifrl/ledgeru/pkg/export"
	"github.com/yurifrl/ledgeru/pkg/ingest"
	"github.com/yurifrl/ledgeru/pkg/models"
	"github.com/yurifrl/ledgeru/pkg/pipeline"
	"github.com/yurifrl/ledgeru/pkg/server"
	"github.com/yurifrl/ledgeru/pkg/ynab"
)

var cfgFile string

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "ledgeru",
	})
}

var rootCmd = &cobra.Command{
	Use:   "ledgeru",
	Short: "Normalize scraped bank transactions into an auditable YNAB ledger",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the normalization pipeline and write the ledger CSV plus audit report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		result, err := runPipeline(logger, cfg)
		if err != nil {
			return err
		}

		outputPath := cfg.OutputPath
		if outputPath == "" {
			outputPath = "ledger.csv"
		}

		content, err := export.Bytes(result.Rows)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputPath, content, 0o644); err != nil {
			return fmt.Errorf("error writing output file: %w", err)
		}

		if cfg.Split {
			if err := writeSplit(outputPath, result.Rows); err != nil {
				return err
			}
		}

		result.Audit.RecordOutput(result.Rows, outputPath, content)

		reportPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".report.txt"
		if err := os.WriteFile(reportPath, []byte(result.Audit.Render()), 0o644); err != nil {
			return fmt.Errorf("error writing report file: %w", err)
		}

		logger.Info("run finished", "output", outputPath, "report", reportPath, "rows", len(result.Rows))
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Run the pipeline and create the resulting rows on a YNAB account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		manifest, err := models.ManifestFromFile(cfg.Manifest)
		if err != nil {
			return err
		}

		result, err := runPipeline(logger, cfg)
		if err != nil {
			return err
		}

		tokenEnv := manifest.YNAB.TokenEnv
		if tokenEnv == "" {
			tokenEnv = "YNAB_TOKEN"
		}
		token := os.Getenv(tokenEnv)
		if token == "" {
			return fmt.Errorf("missing YNAB token in $%s", tokenEnv)
		}

		client := ynab.New(token)
		if err := client.Push(manifest.YNAB.BudgetID, manifest.YNAB.AccountID, result.Rows); err != nil {
			return err
		}
		logger.Info("pushed transactions", "count", len(result.Rows), "account_id", manifest.YNAB.AccountID)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		return server.New(logger, cfg.SampleLimit).Start(cfg.ListenAddr)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <statement_file>",
	Short: "Parse a statement file and dump the raw transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		logger := newLogger()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		txs, err := ingest.New(logger).ProcessBytes(data, filepath.Base(args[0]))
		if err != nil {
			return err
		}

		pp.Println(txs)
		return nil
	},
}

func runPipeline(logger *log.Logger, cfg *config.Config) (*pipeline.Result, error) {
	if cfg.Manifest == "" {
		return nil, fmt.Errorf("no manifest configured, set --manifest or the config file")
	}

	manifest, err := models.ManifestFromFile(cfg.Manifest)
	if err != nil {
		return nil, err
	}

	parser := ingest.New(logger)
	results := make([]models.SourceResult, 0, len(manifest.Sources))
	for _, stmt := range manifest.Sources {
		results = append(results, parser.Source(stmt))
	}

	return pipeline.New(logger, cfg.SampleLimit).Run(results), nil
}

func writeSplit(outputPath string, rows []models.LedgerRow) error {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	for _, bucket := range export.SplitBySource(rows) {
		content, err := export.Bytes(bucket.Rows)
		if err != nil {
			return err
		}
		path := fmt.Sprintf("%s-%s.csv", base, bucket.Source)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("error writing split file: %w", err)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("manifest", "", "Manifest file listing statement sources")
	rootCmd.PersistentFlags().Int("sample_limit", 10, "Max transformation pairs kept in the audit report (<=0 keeps all)")

	runCmd.Flags().String("output", "", "Output CSV path (default ledger.csv)")
	runCmd.Flags().Bool("split", false, "Write one CSV per source account in addition to the full ledger")

	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	_ = gotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
