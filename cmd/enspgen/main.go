// Command enspgen turns an abstract network topology description into
// per-device configurations and a simulator .topo file.
//
// Usage:
//
//	enspgen generate <project> -t <topology file> -o <dir>
//	enspgen validate -t <topology file>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ensp-automation/enspgen/pkg/catalog"
	"github.com/ensp-automation/enspgen/pkg/configgen"
	"github.com/ensp-automation/enspgen/pkg/topology"
	"github.com/ensp-automation/enspgen/pkg/util"
)

var (
	topologyFile string
	templateDir  string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:           "enspgen",
	Short:         "Network topology generator for the eNSP simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `enspgen resolves an abstract device/connection description against the
built-in device catalog, synthesizes per-device configuration text, runs a
validate/repair pass, and writes a simulator-ready .topo file plus a JSON
snapshot of the resolved topology.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return util.SetLogLevel(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&topologyFile, "topology", "t", "", "Path to abstract topology file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&templateDir, "templates", "", "Directory with external configuration templates")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildTopology loads the abstract topology and resolves it through the
// default catalog.
func buildTopology() (*topology.Topology, error) {
	if topologyFile == "" {
		return nil, fmt.Errorf("--topology (-t) is required")
	}

	abs, err := topology.Load(topologyFile)
	if err != nil {
		return nil, err
	}

	builder := topology.NewBuilder(catalog.Default(), configgen.New(templateDir))
	return builder.Build(abs)
}
