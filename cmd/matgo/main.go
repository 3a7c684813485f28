// Package main implements the matgo command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgPath string
	dataDir string
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "matgo",
	Short: "matgo - composition descriptors for materials machine learning",
	Long: `matgo converts chemical formulas into numeric descriptor vectors.

Property tables are plain text files indexed by atomic number. Point the
tool at a local directory, an S3 bucket or a MinIO deployment:

  matgo featurize NaCl Fe2O3
  matgo tables list
  matgo tables show Electronegativity
  matgo tables sync --bucket matgo-tables --prefix magpie/
  matgo cohesive NaCl`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Local table directory, overrides the configured source")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON instead of text")

	rootCmd.AddCommand(featurizeCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(cohesiveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
