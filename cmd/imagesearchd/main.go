package main

import (
	"fmt"
	"os"

	"github.com/kalichetiAravindreddy/image-search/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "imagesearchd",
		Short: "Image search daemon and CLI",
		Long:  "Image search daemon for running the API server and inspecting search statistics",
	}

	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.StatsCmd())
	rootCmd.AddCommand(admin.SessionsCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
