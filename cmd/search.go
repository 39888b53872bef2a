// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"devrank/internal/config"
	"devrank/internal/domain"
	"devrank/internal/gateway"
	"devrank/internal/usecase"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Searches user handles across platforms and outputs ranked results",
	Long: `Looks every given user handle up on every given platform, collects the
repositories of each hit and outputs one list ranked by total rating,
as JSON by default or in display form with --text.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		platformNames, _ := cmd.Flags().GetStringSlice("platforms")
		userHandles, _ := cmd.Flags().GetStringSlice("users")
		asText, _ := cmd.Flags().GetBool("text")

		// Inject dependencies and run the main business logic.
		cfg := config.Load()
		factory := gateway.NewFactory(cfg, logger)
		platforms := make([]gateway.Platform, 0, len(platformNames))
		for _, name := range platformNames {
			platform, err := factory.Create(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create platform client: %v\n", err)
				os.Exit(1)
			}
			platforms = append(platforms, platform)
		}

		searcher := usecase.NewSearcher(logger)
		results, err := searcher.Search(ctx, platforms, userHandles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to search: %v\n", err)
			os.Exit(1)
		}
		logRatingSummary(logger, results)

		if asText {
			for _, user := range results {
				block, err := user.Render()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Failed to render results: %v\n", err)
					os.Exit(1)
				}
				fmt.Print(block)
			}
			return
		}

		payload := make([]domain.UserData, 0, len(results))
		for _, user := range results {
			data, err := user.Data()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to serialize results: %v\n", err)
				os.Exit(1)
			}
			payload = append(payload, data)
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
			os.Exit(1)
		}

		// Print the final JSON to standard output.
		fmt.Println(string(jsonData))
	},
}

// logRatingSummary reports mean and median of the result ratings; only
// visible with --verbose.
func logRatingSummary(logger *logrus.Logger, results []*domain.User) {
	if len(results) == 0 {
		return
	}
	ratings := make([]float64, len(results))
	for i, user := range results {
		ratings[i] = user.TotalRating()
	}
	mean, err := stats.Mean(ratings)
	if err != nil {
		return
	}
	median, err := stats.Median(ratings)
	if err != nil {
		return
	}
	logger.Debugf("%d results, total rating mean %.2f, median %.2f", len(results), mean, median)
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringSliceP("platforms", "p", nil, "Platform names to search (github, gitlab, bitbucket)")
	searchCmd.Flags().StringSliceP("users", "u", nil, "User handles to search for")
	searchCmd.MarkFlagRequired("platforms")
	searchCmd.MarkFlagRequired("users")
	searchCmd.Flags().Bool("text", false, "Render results in display form instead of JSON")
}
