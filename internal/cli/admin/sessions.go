package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/kalichetiAravindreddy/image-search/internal/repository"
	"github.com/spf13/cobra"
)

func SessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage user sessions",
		Long:  "Inspect and clean up user sessions",
	}

	cmd.AddCommand(SessionsPurgeCmd())

	return cmd
}

func SessionsPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions",
		Long:  "Delete all sessions past their expiry time",
		RunE:  runSessionsPurge,
	}
}

func runSessionsPurge(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	sessionRepo := repository.NewSessionRepository(pool)

	purged, err := sessionRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to purge sessions: %w", err)
	}

	fmt.Printf("Purged %d expired sessions\n", purged)
	return nil
}
