package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ensp-automation/enspgen/pkg/topology"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Build a topology and report validation issues without writing files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := buildTopology()
		if err != nil {
			return err
		}

		valid, issues := topology.Validate(topo)
		if valid {
			fmt.Printf("Topology is valid (%d devices, %d connections)\n",
				len(topo.Devices), len(topo.Connections))
			return nil
		}

		for _, issue := range issues {
			fmt.Printf("  - %s\n", issue.Message)
		}
		return fmt.Errorf("topology has %d validation issues", len(issues))
	},
}
