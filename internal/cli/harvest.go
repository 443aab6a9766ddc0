package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/ppiankov/faqharvest/internal/logger"
	"github.com/ppiankov/faqharvest/internal/model"
	"github.com/ppiankov/faqharvest/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Run the source adapters and write the FAQ dataset",
	Long: `Harvest fetches every registered FAQ source in a fixed order, extracts
question/answer pairs and writes:

  <out>/faq.json               full records
  <out>/faq-questions.json     question index
  <out>/answers/<id>.json      one file per record

Per-record files from the previous run are moved to <out>/answers/outdated
first. A failing source is logged and contributes no records.

Example:
  faqharvest harvest
  faqharvest harvest --out ./data --source mzcr,cnb
  faqharvest harvest --cache --robots --timeout 30s --max-attempts 3`,
	Args: cobra.NoArgs,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	f := harvestCmd.Flags()
	f.String("out", "data", "output directory")
	f.StringSlice("source", nil, "only run these source ids (see 'faqharvest sources')")
	f.String("pinned-dir", "data/pinned", "directory with pinned local documents")
	f.Duration("timeout", 0, "per-request HTTP timeout (0 = none)")
	f.Int("max-attempts", 1, "fetch attempts per page")
	f.Bool("insecure", true, "skip TLS certificate verification")
	f.Bool("cache", false, "cache fetched pages in memory and on disk")
	f.Bool("robots", false, "respect robots.txt")
	f.Float64("rps", 2, "requests per second per host (0 = unlimited)")

	bind := map[string]string{
		"output.dir":                        "out",
		"sources.only":                      "source",
		"sources.pinned_dir":                "pinned-dir",
		"http.timeout":                      "timeout",
		"http.max_attempts":                 "max-attempts",
		"http.insecure_tls":                 "insecure",
		"cache.enabled":                     "cache",
		"robots.respect":                    "robots",
		"rate_limiting.requests_per_second": "rps",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	log.Info("harvest started",
		logger.String("out", cfg.Output.Dir),
		logger.Strings("only", cfg.Sources.Only),
		logger.Bool("cache", cfg.Cache.Enabled),
	)

	report, err := p.Run(ctx)
	if report != nil {
		printReport(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	log.Info("harvest finished",
		logger.Int("records", report.Total),
		logger.Int("failed_sources", report.Failures()),
		logger.Int("rotated", report.Rotated),
	)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printReport(w io.Writer, r *model.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tNAME\tRECORDS\tTIME\tSTATUS")
	for _, s := range r.Sources {
		status := "ok"
		if s.Failed {
			status = "failed: " + s.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", s.ID, s.Name, s.Entities, s.Elapsed.Round(time.Millisecond), status)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nCaptured at %s: %d records from %d sources (%d failed)\n",
		r.CapturedAt.Format(time.RFC3339), r.Total, len(r.Sources), r.Failures())
	if r.OutputDir != "" {
		fmt.Fprintf(w, "Written to %s (%d previous answer files moved to outdated)\n", r.OutputDir, r.Rotated)
	}
}
