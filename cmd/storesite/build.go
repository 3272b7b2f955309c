package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/storesite-go/internal/config"
	"github.com/ukaji3/storesite-go/internal/log"
	"github.com/ukaji3/storesite-go/pkg/storesite"
	"github.com/ukaji3/storesite-go/pkg/storesite/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the site from the workbook",
		Long: `Build reads the workbook and writes the complete site:

  index.html            one card per listing
  listings/<slug>.html  one page per listing
  assets/site.css       shared stylesheet
  listings.json         data export
  sitemap.xml           only when a base URL is set

Examples:
  # Build listings.xlsx into docs/
  storesite build

  # Read a named sheet and publish under a base URL
  storesite build -i stores.xlsx --sheet Stores --base-url https://example.com

  # Map a column whose header is not recognised
  storesite build --column name="Shop Title"`,
		Args: cobra.NoArgs,
		RunE: runBuildCmd,
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("input", "i", storesite.DefaultInputPath, "Input workbook (xlsx)")
	flags.StringP("output", "o", storesite.DefaultOutputDir, "Output directory")
	flags.StringP("config", "c", "", "Configuration file (default: ./"+config.DefaultConfigFile+")")
	flags.String("sheet", "", "Worksheet name (default: first worksheet)")
	flags.String("title", storesite.DefaultTitle, "Site title")
	flags.String("lang", storesite.DefaultLang, "HTML lang attribute")
	flags.String("base-url", "", "Public root URL; enables canonical links and sitemap.xml")
	flags.StringToString("column", nil, "Map a field to a header label (field=Header)")
	flags.Bool("clean", false, "Remove pages of earlier builds before writing")
	flags.String("report", "", "Write a Markdown build report to this file")
}

// runBuildCmd executes the build.
func runBuildCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return err
	}
	cfg, cfgPath, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	logger := log.New(cmd.ErrOrStderr(), verbose)
	if cfgPath != "" {
		logger.Debug("configuration loaded", "path", cfgPath)
	}

	opts := cfg.Options(logger)
	result, err := storesite.Build(opts)
	if err != nil {
		return err
	}

	reportPath, err := flags.GetString("report")
	if err != nil {
		return err
	}
	if reportPath != "" {
		if err := writeReport(reportPath, result.Report(opts)); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %d listings into %s (%d files, %d warnings)\n",
		len(result.Site.Listings), opts.OutputDir, len(result.Files), len(result.Warnings))
	return nil
}

// applyFlags copies explicitly set flags over the file configuration.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"input", &cfg.Input},
		{"output", &cfg.Output},
		{"sheet", &cfg.Sheet},
		{"title", &cfg.Title},
		{"lang", &cfg.Lang},
		{"base-url", &cfg.BaseURL},
	}
	for _, s := range stringFlags {
		if !flags.Changed(s.name) {
			continue
		}
		v, err := flags.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	if flags.Changed("clean") {
		clean, err := flags.GetBool("clean")
		if err != nil {
			return err
		}
		cfg.Clean = clean
	}

	if flags.Changed("column") {
		columns, err := flags.GetStringToString("column")
		if err != nil {
			return err
		}
		if cfg.Columns == nil {
			cfg.Columns = make(map[string]string, len(columns))
		}
		for field, header := range columns {
			cfg.Columns[field] = header
		}
	}
	return nil
}

func writeReport(path string, report *output.Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := output.WriteReport(f, report); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
