package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mycelium",
	Short: "Mycelium is a capability-based intent routing and discovery fabric",
	Long:  `Mycelium routes intents to registered components through capability-aware discovery, with pluggable validation, composition strategies and load balancing.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("lattice", "", "Path to a YAML action-lattice config (defaults to the built-in admin/write/delete/read graph)")
}
