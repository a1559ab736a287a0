package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/mycelium"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mycelium",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mycelium version %s\n", strings.TrimSpace(mycelium.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
