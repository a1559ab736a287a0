package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/mycelium/internal/render"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Render a report of the demo fabric's components and catalog",
	Long:  `Builds the demo fabric and prints a rendered markdown report of its registered components, their health, and the capability catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		fab, err := demoFabric(cmd)
		if err != nil {
			fmt.Printf("Error initializing fabric: %v\n", err)
			os.Exit(1)
		}
		defer fab.Close()

		var b strings.Builder
		b.WriteString("# Mycelium Fabric\n\n")

		b.WriteString("## Components\n\n")
		b.WriteString("| ID | Type | Version | Capabilities | Health |\n")
		b.WriteString("|----|------|---------|--------------|--------|\n")
		for _, rec := range fab.Registry().List() {
			caps := make([]string, 0, len(rec.Metadata.Capabilities))
			for _, c := range rec.Metadata.Capabilities {
				caps = append(caps, c.String())
			}
			sort.Strings(caps)
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				rec.ID, rec.Metadata.Type, rec.Metadata.Version,
				strings.Join(caps, ", "), fab.GetComponentHealth(rec.ID))
		}

		b.WriteString("\n## Capability catalog\n\n")
		for _, entry := range fab.Catalog().ListAll() {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", entry.ID, entry.Intent)
			if len(entry.Requires) > 0 {
				fmt.Fprintf(&b, "- Requires: %s\n", strings.Join(entry.Requires, ", "))
			}
			if len(entry.Provides) > 0 {
				fmt.Fprintf(&b, "- Provides: %s\n", strings.Join(entry.Provides, ", "))
			}
			if len(entry.Effects) > 0 {
				fmt.Fprintf(&b, "- Effects: %s\n", strings.Join(entry.Effects, ", "))
			}
			b.WriteString("\n")
		}

		fmt.Print(render.NewRenderer()(b.String()))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
