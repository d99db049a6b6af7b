package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/digest/internal/cli"
	"github.com/cloo-solutions/digest/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "digestd",
		Short: "Digest development server",
		Long:  "Digest development server serving the content API from built-in sample data",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
