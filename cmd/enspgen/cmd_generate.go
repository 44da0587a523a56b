package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ensp-automation/enspgen/pkg/topofile"
	"github.com/ensp-automation/enspgen/pkg/topology"
)

var outputDir string

var generateCmd = &cobra.Command{
	Use:   "generate <project>",
	Short: "Build a topology and write the .topo file and JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]

		topo, err := buildTopology()
		if err != nil {
			return err
		}

		valid, issues := topology.Reconcile(topo)
		if !valid {
			fmt.Printf("Topology has %d unresolved issues:\n", len(issues))
			for _, issue := range issues {
				fmt.Printf("  - %s\n", issue.Message)
			}
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		snapshotPath := filepath.Join(outputDir, project+".json")
		if err := topology.SaveSnapshot(topo, snapshotPath); err != nil {
			return err
		}

		topoPath := filepath.Join(outputDir, project+".topo")
		serializer := topofile.NewSerializer(topofile.SystemAdapterSource())
		if err := serializer.Serialize(topo, topoPath); err != nil {
			return err
		}

		fmt.Printf("Generated project %q (%d devices, %d connections)\n",
			project, len(topo.Devices), len(topo.Connections))
		fmt.Printf("  %s\n", snapshotPath)
		fmt.Printf("  %s\n", topoPath)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory for generated artifacts")
}
