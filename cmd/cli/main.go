package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host string
	ref  string
)

var rootCmd = &cobra.Command{
	Use:   "league-cli",
	Short: "A CLI to interact with the class-league server",
	Long: `A command-line interface for making requests to the various endpoints
of the class-league application. League commands use the shared-link
reference of a league and open it read-only.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&ref, "ref", "", "The league reference from a shared link")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
