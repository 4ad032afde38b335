package cmd

import (
	"context"
	"fmt"

	"github.com/sorade/weebdl/internal/weeb"

	"github.com/spf13/cobra"
)

var (
	flagBrowsePage   int
	flagBrowsePeriod string
)

func init() {
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog listings without searching",
	}

	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "Series recently added to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := loadClient()
			if err != nil {
				return err
			}
			series, err := client.RecentlyAdded(context.Background(), flagBrowsePage)
			if err != nil {
				return err
			}
			printSeries(series)
			return nil
		},
	}
	recentCmd.Flags().IntVar(&flagBrowsePage, "page", 1, "listing page")

	hotCmd := &cobra.Command{
		Use:   "hot",
		Short: "Trending series by view count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := parseHotPeriod(flagBrowsePeriod)
			if err != nil {
				return err
			}
			client, err := loadClient()
			if err != nil {
				return err
			}
			series, err := client.HotSeries(context.Background(), period)
			if err != nil {
				return err
			}
			printSeries(series)
			return nil
		},
	}
	hotCmd.Flags().StringVar(&flagBrowsePeriod, "period", "weekly", "view-count window: weekly, monthly or all-time")

	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "Latest chapter updates across the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := loadClient()
			if err != nil {
				return err
			}
			updates, err := client.LatestUpdates(context.Background(), flagBrowsePage)
			if err != nil {
				return err
			}
			printUpdates(updates)
			return nil
		},
	}
	latestCmd.Flags().IntVar(&flagBrowsePage, "page", 1, "listing page")

	hotUpdatesCmd := &cobra.Command{
		Use:   "hot-updates",
		Short: "Chapter updates of currently trending series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := loadClient()
			if err != nil {
				return err
			}
			updates, err := client.HotUpdates(context.Background())
			if err != nil {
				return err
			}
			printUpdates(updates)
			return nil
		},
	}

	browseCmd.AddCommand(recentCmd, hotCmd, latestCmd, hotUpdatesCmd)
	rootCmd.AddCommand(browseCmd)
}

func parseHotPeriod(s string) (weeb.HotPeriod, error) {
	switch s {
	case "", "weekly":
		return weeb.HotWeekly, nil
	case "monthly":
		return weeb.HotMonthly, nil
	case "all-time", "all":
		return weeb.HotAllTime, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

func printSeries(series []*weeb.Manga) {
	for i, m := range series {
		fmt.Printf("%3d) %s\n     %s\n", i+1, m.Title, m.URL)
	}
	fmt.Printf("\n%d series.\n", len(series))
}

func printUpdates(updates []weeb.Update) {
	for i, u := range updates {
		fmt.Printf("%3d) %s, chapter %s\n     %s\n", i+1, u.Manga.Title, u.Chapter.FileBase(), u.Chapter.URL)
	}
	fmt.Printf("\n%d updates.\n", len(updates))
}
