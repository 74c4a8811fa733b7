package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/opportunity-matcher/internal/catalog"
	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/logging"
	"github.com/jonathan/opportunity-matcher/internal/matching"
	"github.com/jonathan/opportunity-matcher/internal/observability"
	"github.com/jonathan/opportunity-matcher/internal/store"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

var (
	matchCVPath         string
	matchOppsPath       string
	matchTopK           int
	matchMinSalary      float64
	matchModality       string
	matchExcludeExpired bool
	matchLimit          int
	matchVerbose        bool
	matchConfigPath     string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank opportunities against a candidate profile",
	Long: `Score a candidate profile (CV analysis JSON) against opportunity records and
print the ranked top-K with score breakdowns. Records come from a local JSON
file when --opportunities is given, otherwise from the database.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchCVPath, "cv", "", "Path to candidate profile JSON (required)")
	matchCmd.Flags().StringVar(&matchOppsPath, "opportunities", "", "Path to opportunities JSON (offline mode)")
	matchCmd.Flags().IntVar(&matchTopK, "top-k", 0, "Number of results to return (default 5)")
	matchCmd.Flags().Float64Var(&matchMinSalary, "min-salary", 0, "Preferred minimum salary")
	matchCmd.Flags().StringVar(&matchModality, "modality", "", "Preferred modality (REMOTE, HYBRID, ON_SITE)")
	matchCmd.Flags().BoolVar(&matchExcludeExpired, "exclude-expired", true, "Exclude opportunities past their deadline")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 0, "Maximum records to load from the database (0 = no limit)")
	matchCmd.Flags().BoolVar(&matchVerbose, "verbose", false, "Print formatted summaries")
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to JSON config file")
	_ = matchCmd.MarkFlagRequired("cv")
	rootCmd.AddCommand(matchCmd)
}

// opportunitiesFile mirrors the batch ingestion payload so the same fixture
// files work for both the CLI and the API
type opportunitiesFile struct {
	Opportunities []types.OpportunityRecord `json:"opportunities"`
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := &config.Config{}
	if matchConfigPath != "" {
		loaded, err := config.LoadConfig(matchConfigPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := logging.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cvData, err := os.ReadFile(matchCVPath)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
	}
	var cv types.CandidateProfile
	if err := json.Unmarshal(cvData, &cv); err != nil {
		return fmt.Errorf("failed to parse CV JSON: %w", err)
	}

	prefs := &types.Preferences{
		TopK:      matchTopK,
		MinSalary: matchMinSalary,
		Modality:  types.Modality(matchModality),
	}
	filters := &types.Filters{ExcludeExpired: matchExcludeExpired, Limit: matchLimit}

	engineCfg := matching.EngineConfig{
		Weights:   cfg.EngineWeights(),
		Penalties: cfg.EnginePenalties(),
		Logger:    logger,
	}

	var opportunities []types.OpportunityRecord
	if matchOppsPath != "" {
		// Offline mode: no catalog, keys pass through as display names.
		data, err := os.ReadFile(matchOppsPath)
		if err != nil {
			return fmt.Errorf("failed to read opportunities file: %w", err)
		}
		var file opportunitiesFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse opportunities JSON: %w", err)
		}
		opportunities = file.Opportunities
	} else {
		databaseURL := cfg.DatabaseURL
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
		if databaseURL == "" {
			return fmt.Errorf("either --opportunities or DATABASE_URL is required")
		}

		st, err := store.Connect(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		opportunities, err = st.ListForMatching(ctx, prefs, filters)
		if err != nil {
			return err
		}

		// Stored records carry canonical skill keys; the CV's raw
		// spellings must land on the same keyspace.
		canon := catalog.NewCanonicalizer(catalog.DefaultAliases)
		cv.Skills = canon.CanonicalizeAll(cv.Skills)
		skillCatalog := catalog.NewStore(st.Pool(), canon, nil)
		engineCfg.Skills = skillCatalog
		engineCfg.Organizations = skillCatalog
	}

	engine := matching.NewEngine(engineCfg)
	result, err := engine.Match(ctx, &cv, prefs, filters, opportunities)
	if err != nil {
		return err
	}

	if matchVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintCandidateProfile(&cv)
		printer.PrintMatches(result.Matches)
		printer.PrintRunMetadata(&result.Metadata)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
