package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gradstat/adapters/excel"
	domain "gradstat/domain/advisor"
	"gradstat/internal"
	"gradstat/internal/advisor"
	"gradstat/internal/detect"
	"gradstat/internal/report"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "advise",
		Short: "Dataset characteristic detection and statistical test guidance",
	}

	rootCmd.AddCommand(
		newDetectCmd(),
		newGuideCmd(),
		newTestsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Profile a CSV/XLSX dataset and print detected characteristics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, _, err := profileFile(args[0])
			if err != nil {
				return err
			}
			safe, _ := advisor.Sanitize(profile)
			encoded, err := json.MarshalIndent(safe, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
}

func newGuideCmd() *cobra.Command {
	var question string
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "guide [file]",
		Short: "Profile a dataset and print a test recommendation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent := domain.Intent(question)
			if !knownIntent(intent) {
				return fmt.Errorf("unknown question %q, expected one of: %s", question, intentList())
			}

			profile, name, err := profileFile(args[0])
			if err != nil {
				return err
			}
			recs, err := advisor.Resolve(intent, domain.AnswersFromProfile(profile))
			if err != nil {
				return err
			}

			if asHTML {
				os.Stdout.Write(report.HTML(name, profile, recs))
				return nil
			}
			fmt.Print(report.Markdown(name, profile, recs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", string(domain.IntentDescribeData),
		"research question ("+intentList()+")")
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the report as HTML")
	return cmd
}

func newTestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tests",
		Short: "List the statistical test catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range advisor.CatalogKeys() {
				rec, ok := advisor.Lookup(key, domain.ConfidenceHigh)
				if !ok {
					continue
				}
				fmt.Printf("%-22s %s\n", key, rec.TestName)
			}
			return nil
		},
	}
}

func profileFile(path string) (*domain.DatasetProfile, string, error) {
	logger := internal.NewDefaultLogger()
	reader := excel.NewDataReader(logger)
	ds, err := reader.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	aggregator := advisor.NewAggregator(detect.DefaultOptions(), logger)
	return aggregator.Profile(context.Background(), ds), ds.Name, nil
}

func knownIntent(intent domain.Intent) bool {
	for _, known := range domain.KnownIntents() {
		if intent == known {
			return true
		}
	}
	return false
}

func intentList() string {
	intents := domain.KnownIntents()
	parts := make([]string, len(intents))
	for i, intent := range intents {
		parts[i] = string(intent)
	}
	return strings.Join(parts, ", ")
}
