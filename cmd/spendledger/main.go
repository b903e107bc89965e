package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"spendledger/internal/aggregate"
	"spendledger/internal/amqp"
	"spendledger/internal/backend"
	"spendledger/internal/cache"
	"spendledger/internal/classify"
	"spendledger/internal/config"
	"spendledger/internal/core"
	applog "spendledger/internal/log"
	"spendledger/internal/services"
	"spendledger/internal/storage"
)

var (
	budgetPath string
	modeFlag   string
	outPath    string
	noPersist  bool
)

var rootCmd = &cobra.Command{
	Use:   "spendledger [files or directories...]",
	Short: "Build a spending report from bank statement and SMS text exports",
	Long: `spendledger extracts transactions from OCR'd bank statements and SMS
exports, classifies each vendor into a spending category and prints an
aggregated report with monthly totals, top categories and budget violations.

Pages inside a single file may be separated with form feed characters;
each page is then tracked separately in the output records.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs stored in the local database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer repo.Close()

		runs, err := repo.ListRuns(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  files=%d  txns=%d\n", r.ID, r.CreatedTS.Format("2006-01-02 15:04:05"), r.FileCount, r.TxnCount)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&budgetPath, "budget", "b", "", "path to a JSON file mapping category to monthly limit")
	rootCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "extractor mode: heuristic or assisted (overrides EXTRACTOR_MODE)")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the JSON result to this file instead of stdout")
	rootCmd.Flags().BoolVar(&noPersist, "no-persist", false, "skip saving the run to the local database")
	rootCmd.AddCommand(runsCmd)
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	ctx := cmd.Context()

	cfg := config.Load()
	if modeFlag != "" {
		cfg.ExtractorMode = modeFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := applog.New(applog.Config{Level: cfg.LogLevel, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	docs, err := readDocuments(args)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no readable .txt files among the given paths")
	}

	var budget core.BudgetConfig
	if budgetPath != "" {
		budget, err = core.LoadBudgetConfig(budgetPath)
		if err != nil {
			return err
		}
	}

	extractor, err := backend.NewExtractor(ctx, cfg, logger)
	if err != nil {
		return err
	}

	rules := core.DefaultCategoryMap()
	classifier := classify.NewVendorClassifier(rules)
	fallback := backend.NewFallback(ctx, cfg, rules, logger)
	vendorCache := cache.Load(cfg.VendorCachePath, logger)
	assigner := classify.NewAssigner(classifier, fallback, vendorCache, logger)

	var repo *storage.Repository
	if !noPersist {
		repo, err = storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer repo.Close()
	}

	var publisher services.RunPublisher
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WithComponent(applog.ComponentAMQP).Warn(
				"AMQP unavailable, run sync disabled", applog.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	pipeline := services.NewPipeline(
		extractor,
		assigner,
		aggregate.NewAggregator(),
		aggregate.NewTrendBuilder(classifier),
		repo,
		publisher,
		logger,
	)

	result, err := pipeline.Run(ctx, docs, budget)
	if err != nil {
		return err
	}

	return writeResult(result)
}

// readDocuments loads each argument as a document. Directories contribute
// their .txt files in name order. A form feed inside a file marks a page
// boundary.
func readDocuments(args []string) ([]core.SourceDocument, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if info.IsDir() {
			entries, err := filepath.Glob(filepath.Join(arg, "*.txt"))
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", arg, err)
			}
			sort.Strings(entries)
			paths = append(paths, entries...)
			continue
		}
		paths = append(paths, arg)
	}

	docs := make([]core.SourceDocument, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		doc := core.SourceDocument{
			Name: filepath.Base(path),
			Text: string(data),
		}
		if strings.Contains(doc.Text, "\f") {
			doc.Pages = strings.Split(doc.Text, "\f")
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func writeResult(result *services.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
