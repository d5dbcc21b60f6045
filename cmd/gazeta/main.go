package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolbeans/gazeta/pkg/archive"
	"github.com/coolbeans/gazeta/pkg/config"
	"github.com/coolbeans/gazeta/pkg/diario"
	"github.com/coolbeans/gazeta/pkg/export"
	"github.com/coolbeans/gazeta/pkg/gazette"
	"github.com/coolbeans/gazeta/pkg/harvest"
	"github.com/coolbeans/gazeta/pkg/logger"
	"github.com/coolbeans/gazeta/pkg/normalize"
	"github.com/coolbeans/gazeta/pkg/segment"
)

var version = "0.1.0"

// dateFlagLayout is the format of all date flags.
const dateFlagLayout = "2006-01-02"

var (
	flagVerbose    bool
	flagConfigPath string
	flagProfile    string
	flagProfileDir string
	flagCacheDir   string

	appConfig config.Config
	profiles  *segment.ProfileRegistry
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gazeta",
		Short: "Diário Oficial de Niterói harvester",
		Long: `Gazeta fetches daily editions of the Diário Oficial de Niterói,
extracts their text, and segments them into typed records:
  - Municipal decrees, with optional annexes
  - Appointment and dismissal orders
  - Annulment notices
  - Corrections

Records are exported as CSV (one file per kind) or JSON, and batch
harvests can be archived to a local SQLite database.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetVerbose(flagVerbose)

			cfg, err := config.Load(flagConfigPath)
			if err != nil {
				return err
			}
			if flagCacheDir != "" {
				cfg.CacheDir = flagCacheDir
			}
			if flagProfileDir != "" {
				cfg.ProfileDir = flagProfileDir
			}
			if flagProfile != "" {
				cfg.Profile = flagProfile
			}
			appConfig = cfg

			profiles = segment.NewProfileRegistry()
			if cfg.ProfileDir != "" {
				if err := profiles.LoadDirectory(cfg.ProfileDir); err != nil {
					return fmt.Errorf("loading profiles: %w", err)
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file (default ~/.config/gazeta/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "segmentation profile name")
	rootCmd.PersistentFlags().StringVar(&flagProfileDir, "profile-dir", "", "directory of profile YAML files")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "edition cache directory")

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(harvestCmd())
	rootCmd.AddCommand(segmentCmd())
	rootCmd.AddCommand(profilesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fetchCmd() *cobra.Command {
	var (
		dateFlag   string
		outDir     string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and segment a single daily edition",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse(dateFlagLayout, dateFlag)
			if err != nil {
				return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", dateFlag)
			}

			engine, err := buildEngine()
			if err != nil {
				return err
			}
			client, err := buildClient()
			if err != nil {
				return err
			}

			text, found, err := client.FetchEdition(cmd.Context(), date)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("Nenhuma edição publicada em %s\n", date.Format("02/01/2006"))
				return nil
			}

			records := engine.Segment(text)
			editions := []gazette.Edition{{Records: records}}

			if err := writeOutput(outDir, formatFlag, editions, export.Options{}); err != nil {
				return err
			}
			printCounts(records)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "edition date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&formatFlag, "format", "csv", "output format: csv or json")
	cmd.MarkFlagRequired("date")

	return cmd
}

func harvestCmd() *cobra.Command {
	var (
		fromFlag       string
		toFlag         string
		outDir         string
		formatFlag     string
		dbPath         string
		noPlaceholders bool
	)

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Fetch and segment every edition in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := time.Parse(dateFlagLayout, fromFlag)
			if err != nil {
				return fmt.Errorf("invalid --from %q: expected YYYY-MM-DD", fromFlag)
			}
			last, err := time.Parse(dateFlagLayout, toFlag)
			if err != nil {
				return fmt.Errorf("invalid --to %q: expected YYYY-MM-DD", toFlag)
			}
			if last.Before(first) {
				return fmt.Errorf("--to %s is before --from %s", toFlag, fromFlag)
			}

			engine, err := buildEngine()
			if err != nil {
				return err
			}
			client, err := buildClient()
			if err != nil {
				return err
			}

			harvester := harvest.New(client, engine)
			harvester.Placeholders = !noPlaceholders

			editions, report, err := harvester.Run(cmd.Context(), first, last)
			if err != nil {
				return err
			}

			if dbPath != "" {
				if err := saveToArchive(cmd, dbPath, editions); err != nil {
					return err
				}
			}

			if err := writeOutput(outDir, formatFlag, editions, export.Options{IncludeDate: true}); err != nil {
				return err
			}

			fmt.Print(report.Summary())
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "last date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&formatFlag, "format", "csv", "output format: csv or json")
	cmd.Flags().StringVar(&dbPath, "db", "", "also archive editions to a SQLite database")
	cmd.Flags().BoolVar(&noPlaceholders, "no-placeholders", false, "skip dates without an edition instead of writing placeholder rows")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

func segmentCmd() *cobra.Command {
	var (
		sourcePath string
		outDir     string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Segment a local edition file (PDF or extracted text)",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(sourcePath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", sourcePath, err)
			}

			text := string(content)
			if strings.EqualFold(filepath.Ext(sourcePath), ".pdf") {
				text, err = diario.ExtractText(content)
				if err != nil {
					return fmt.Errorf("extracting %s: %w", sourcePath, err)
				}
			}
			text = normalize.Text(text)

			engine, err := buildEngine()
			if err != nil {
				return err
			}
			records := engine.Segment(text)
			editions := []gazette.Edition{{Records: records}}

			if err := writeOutput(outDir, formatFlag, editions, export.Options{}); err != nil {
				return err
			}
			printCounts(records)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "edition file to segment")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&formatFlag, "format", "csv", "output format: csv or json")
	cmd.MarkFlagRequired("source")

	return cmd
}

func profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List available segmentation profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := profiles.List()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// buildEngine resolves the configured profile and constructs the engine.
func buildEngine() (*segment.Engine, error) {
	profile, ok := profiles.Get(appConfig.Profile)
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", appConfig.Profile)
	}
	logger.Debug("using profile %q (strategy %s)", profile.Name, profile.OrderStrategy)
	return segment.NewEngine(profile), nil
}

// buildClient constructs the archive client from the app configuration.
func buildClient() (*diario.Client, error) {
	clientConfig := diario.DefaultConfig()
	if appConfig.BaseURL != "" {
		clientConfig.BaseURL = appConfig.BaseURL
	}
	if appConfig.UserAgent != "" {
		clientConfig.UserAgent = appConfig.UserAgent
	}
	if appConfig.RequestsPerSecond > 0 {
		clientConfig.RequestsPerSecond = appConfig.RequestsPerSecond
	}
	if appConfig.MaxRetries > 0 {
		clientConfig.MaxRetries = appConfig.MaxRetries
	}

	if appConfig.CacheDir != "" {
		ttl := time.Duration(appConfig.CacheTTLHours) * time.Hour
		cache, err := diario.NewDiskCache(appConfig.CacheDir, ttl)
		if err != nil {
			return nil, err
		}
		clientConfig.Cache = cache
	}

	return diario.NewClient(clientConfig), nil
}

func writeOutput(outDir, format string, editions []gazette.Edition, opts export.Options) error {
	switch format {
	case "csv":
		return export.WriteCSVFiles(outDir, editions, opts)
	case "json":
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", outDir, err)
		}
		return export.WriteJSONFile(filepath.Join(outDir, "registros.json"), editions, opts)
	default:
		return fmt.Errorf("unknown format %q: expected csv or json", format)
	}
}

func saveToArchive(cmd *cobra.Command, dbPath string, editions []gazette.Edition) error {
	store, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, edition := range editions {
		if err := store.SaveEdition(cmd.Context(), edition); err != nil {
			return err
		}
	}
	logger.Info("archived %d editions to %s", len(editions), dbPath)
	return nil
}

func printCounts(records gazette.RecordSet) {
	for _, kind := range gazette.Kinds {
		fmt.Printf("%-24s %d\n", string(kind)+":", records.Count(kind))
	}
	if dropped := records.Diagnostics.Total(); dropped > 0 {
		fmt.Printf("descartados: %d\n", dropped)
	}
}
