package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velosh/paddockwire/internal/client"
)

var (
	flagEndpoint string
	flagDBPath   string
	flagCached   bool
	flagLimit    int
)

var rootCmd = &cobra.Command{
	Use:   "newsctl",
	Short: "Terminal reader for the paddockwire news feed",
	Long: `newsctl pulls merged Formula 1 stories from a paddockwire server and keeps a
local cache, so repeat invocations render instantly and survive the server
being unreachable.`,
	RunE: runList,
}

func init() {
	rootCmd.Flags().StringVar(&flagEndpoint, "endpoint", "http://localhost:8080/api/news", "news API endpoint")
	rootCmd.Flags().StringVar(&flagDBPath, "db", client.DefaultStorePath(), "path to the local cache database")
	rootCmd.Flags().BoolVar(&flagCached, "cached", false, "render the local cache only, no network")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 20, "maximum stories to render")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("newsctl dev")
	},
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := client.OpenStore(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	manager := client.NewManager(store, flagEndpoint)

	items := manager.Cached()
	if !flagCached {
		items = manager.Fetch(context.Background())
	}

	if len(items) == 0 {
		fmt.Println(emptyStyle.Render("No stories available. Is the server reachable?"))
		return nil
	}

	if flagLimit > 0 && len(items) > flagLimit {
		items = items[:flagLimit]
	}

	fmt.Println(renderItems(items))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
