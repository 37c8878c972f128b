// Package cmd provides the command-line interface for SiteCorpus.
// It handles command parsing, configuration loading, and pipeline
// execution.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"sitecorpus/internal/config"
	"sitecorpus/internal/crawler"
	"sitecorpus/internal/logging"
	"sitecorpus/internal/pipeline"
	"sitecorpus/internal/storage"
)

var (
	cfgFile   string
	version   string
	buildTime string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitecorpus <start-url>",
	Short: "Crawl a website into an AI-ready JSONL document corpus",
	Long: `SiteCorpus crawls a website breadth-first from a seed URL, extracts
the main content of each page, enriches it with language, content-type
and quality metadata, and writes one JSON document per line.

Re-running against the same output file appends only documents for URLs
not already present in the corpus.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

// Execute runs the root command with signal-aware cancellation. An
// interrupt during the crawl aborts the run with a non-zero exit code
// without corrupting already-written output.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// SetVersionInfo sets version information for the CLI
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Configuration file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sitecorpus.yml)")

	// Configuration management flags
	rootCmd.Flags().Bool("show-config", false, "Display current configuration in YAML format and exit")

	// Crawl scope and politeness flags
	rootCmd.Flags().IntP("max-pages", "p", 100, "Maximum number of pages to crawl")
	rootCmd.Flags().IntP("max-depth", "d", 5, "Maximum link depth from the seed URL")
	rootCmd.Flags().DurationP("delay", "r", 1*time.Second, "Delay between requests")
	rootCmd.Flags().DurationP("timeout", "t", 10*time.Second, "HTTP request timeout")
	rootCmd.Flags().StringP("user-agent", "u", "SiteCorpus/1.0", "HTTP User-Agent header")
	rootCmd.Flags().Bool("ignore-robots", false, "Ignore robots.txt rules")

	// Output flags
	rootCmd.Flags().StringP("output", "o", "./corpus.jsonl", "Path to the JSONL corpus file")
	rootCmd.Flags().String("ledger", "", "Path to a SQLite fetch ledger (empty=disabled)")

	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")

	// Bind flags to viper
	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"max_pages", "max-pages"},
		{"max_depth", "max-depth"},
		{"request_delay", "delay"},
		{"request_timeout", "timeout"},
		{"user_agent", "user-agent"},
		{"output_path", "output"},
		{"ledger_path", "ledger"},
	}

	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, rootCmd.Flags().Lookup(bind.flagName)); err != nil {
			// Log the error but continue - non-critical for operation
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}

	rootCmd.AddCommand(reportCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("sitecorpus")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvPrefix("SC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func showCurrentConfig(cfg *config.PipelineConfig) error {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Configuration validation failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "Displaying configuration anyway...\n\n")
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	fmt.Printf("# Current SiteCorpus Configuration\n")
	fmt.Printf("# Generated at: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("# Configuration file search paths: ./sitecorpus.yml\n")
	fmt.Printf("# Environment variables prefix: SC_\n\n")

	fmt.Print(string(yamlData))
	return nil
}

// loadConfig merges defaults, config file, environment, flags, and the
// positional start URL into one validated configuration.
func loadConfig(cmd *cobra.Command, args []string) (*config.PipelineConfig, error) {
	cfg := config.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(args) > 0 {
		cfg.StartURL = args[0]
	}

	// The flag expresses the inverse of the config field
	if ignore, _ := cmd.Flags().GetBool("ignore-robots"); ignore {
		cfg.RespectRobots = false
	}

	return cfg, nil
}

func runPipeline(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logCfg := logging.DefaultConfig()
	if verbose {
		logCfg.Level = slog.LevelDebug
	}
	logging.SetDefault(logCfg)

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if showConfig, _ := cmd.Flags().GetBool("show-config"); showConfig {
		return showCurrentConfig(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var recorder crawler.FetchRecorder
	if cfg.LedgerPath != "" {
		ledger, err := storage.NewFetchLedger(cfg.LedgerPath)
		if err != nil {
			return fmt.Errorf("failed to open fetch ledger: %w", err)
		}
		defer func() {
			_ = ledger.Close()
		}()
		recorder = ledger
	}

	siteCrawler, err := crawler.NewSiteCrawler(cfg, recorder)
	if err != nil {
		return fmt.Errorf("failed to initialize crawler: %w", err)
	}
	defer siteCrawler.Close()

	store := storage.NewJSONLStore(cfg.OutputPath)
	summary, err := pipeline.New(siteCrawler, store).Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(summary *pipeline.Summary) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("SCRAPING SUMMARY")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Pages crawled:       %d\n", summary.PagesCrawled)
	fmt.Printf("Documents processed: %d\n", summary.DocumentsProcessed)
	fmt.Printf("Documents skipped:   %d\n", summary.DocumentsSkipped)
	fmt.Printf("Total word count:    %d\n", summary.TotalWordCount)
	fmt.Printf("Average word count:  %.2f\n", summary.AverageWordCount)
	fmt.Printf("Output file:         %s\n", summary.OutputPath)
	fmt.Println(strings.Repeat("=", 50))
}
