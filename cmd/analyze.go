package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
	"github.com/xkilldash9x/climarisk-cli/internal/observability"
	"github.com/xkilldash9x/climarisk-cli/internal/oracle"
	"github.com/xkilldash9x/climarisk-cli/internal/orchestrator"
	"github.com/xkilldash9x/climarisk-cli/internal/reporting"
	"github.com/xkilldash9x/climarisk-cli/internal/store"
)

// newAnalyzeCmd creates and configures the `analyze` command.
func newAnalyzeCmd() *cobra.Command {
	var (
		clusters    int
		threshold   float64
		maxSteps    int
		seeds       []int
		output      string
		format      string
		concurrency int
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [risk-file.json]",
		Short: "Runs the full risk-interaction network analysis over a risk set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Cancelled on SIGINT/SIGTERM (wired in Execute).
			ctx := cmd.Context()
			logger := observability.GetLogger()

			// Flags override the config file where explicitly set.
			if cmd.Flags().Changed("clusters") {
				appConfig.SetAnalysisClusters(clusters)
			}
			if cmd.Flags().Changed("threshold") {
				appConfig.SetAnalysisCascadeThreshold(threshold)
			}
			if cmd.Flags().Changed("max-steps") {
				appConfig.SetAnalysisCascadeMaxSteps(maxSteps)
			}
			if cmd.Flags().Changed("seeds") {
				appConfig.SetAnalysisSeedRisks(seeds)
			}
			if cmd.Flags().Changed("concurrency") {
				appConfig.SetOracleConcurrency(concurrency)
			}
			if cmd.Flags().Changed("output") {
				appConfig.SetReportOutputDir(output)
			}
			if cmd.Flags().Changed("format") {
				appConfig.SetReportFormat(format)
			}

			risks, err := loadRisks(args[0])
			if err != nil {
				return err
			}
			logger.Info("Loaded risk set", zap.String("file", args[0]), zap.Int("risks", len(risks)))

			oracleClient, err := oracle.NewGeminiOracle(appConfig.Oracle(), logger)
			if err != nil {
				return fmt.Errorf("failed to initialize scoring oracle: %w", err)
			}

			var runStore schemas.RunStore
			if dbCfg := appConfig.Database(); dbCfg.Enabled {
				pool, err := pgxpool.New(ctx, dbCfg.URL)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer pool.Close()
				st, err := store.New(ctx, pool, logger)
				if err != nil {
					return err
				}
				runStore = st
			}

			orch := orchestrator.New(appConfig, oracleClient, runStore, logger)
			envelope, err := orch.Run(ctx, risks)
			if err != nil {
				return err
			}

			reporter := reporting.NewReporter(appConfig.Report().OutputDir, logger)
			switch appConfig.Report().Format {
			case "html":
				if err := reporter.WriteHTML(envelope); err != nil {
					return err
				}
			default:
				if _, err := reporter.WriteJSON(envelope); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Analysis %s complete: %d risks, %d interactions, %d feedback loops\n",
				envelope.RunID, len(envelope.Risks), len(envelope.Interactions), len(envelope.FeedbackLoops))
			return nil
		},
	}

	analyzeCmd.Flags().IntVar(&clusters, "clusters", 3, "number of risk clusters to detect")
	analyzeCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "cascade activation threshold")
	analyzeCmd.Flags().IntVar(&maxSteps, "max-steps", 10, "cascade simulation step budget")
	analyzeCmd.Flags().IntSliceVar(&seeds, "seeds", nil, "risk ids seeding the cascade (default: highest-impact risk)")
	analyzeCmd.Flags().StringVarP(&output, "output", "o", "output", "report output directory")
	analyzeCmd.Flags().StringVarP(&format, "format", "f", "json", "report format: json or html")
	analyzeCmd.Flags().IntVar(&concurrency, "concurrency", 4, "oracle worker pool size")

	return analyzeCmd
}

// loadRisks reads a JSON array of risks from disk.
func loadRisks(path string) ([]schemas.Risk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read risk file: %w", err)
	}
	var risks []schemas.Risk
	if err := json.Unmarshal(data, &risks); err != nil {
		return nil, fmt.Errorf("failed to parse risk file %q: %w", path, err)
	}
	if len(risks) == 0 {
		return nil, fmt.Errorf("risk file %q contains no risks", path)
	}
	return risks, nil
}

func init() {
	rootCmd.AddCommand(newAnalyzeCmd())
}
