package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kalichetiAravindreddy/image-search/internal/config"
	"github.com/kalichetiAravindreddy/image-search/internal/database"
	"github.com/kalichetiAravindreddy/image-search/internal/repository"
	"github.com/spf13/cobra"
)

func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show search statistics",
		Long:  "Show aggregate statistics over the search log",
	}

	cmd.AddCommand(StatsTopCmd())

	return cmd
}

func StatsTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most searched terms",
		Long:  "Show the most searched terms across all users, count descending",
		RunE:  runStatsTop,
	}

	cmd.Flags().IntP("limit", "n", 5, "Number of terms to show")
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runStatsTop(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	limit, _ := cmd.Flags().GetInt("limit")
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	searchRepo := repository.NewSearchRepository(pool)

	top, err := searchRepo.TopTerms(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to aggregate top searches: %w", err)
	}

	if outputFormat == "json" {
		data := make([]map[string]interface{}, 0, len(top))
		for _, t := range top {
			data = append(data, map[string]interface{}{
				"term":  t.Term,
				"count": t.Count,
			})
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		if len(top) == 0 {
			fmt.Println("No searches recorded yet")
			return nil
		}
		for i, t := range top {
			fmt.Printf("%d. %s (%d)\n", i+1, t.Term, t.Count)
		}
	}

	return nil
}

func getDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return pool, nil
}
