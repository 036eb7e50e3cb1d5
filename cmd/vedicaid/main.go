package main

import (
	"fmt"
	"os"

	"github.com/dishaajyoti/vedicai/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vedicaid",
		Short: "VedicAI daemon and CLI",
		Long:  "VedicAI daemon for running the question-answering API server and managing the knowledge index",
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.IngestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
