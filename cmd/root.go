// Package cmd holds the heron-dispatch command line interface.
package cmd

import "github.com/spf13/cobra"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "heron-dispatch",
	Short:        "Run HERON dispatch cases through pluggable dispatch strategies",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "case", "c", "case.yaml", "case configuration file")
}

// Execute parses arguments and runs the selected subcommand.
func Execute() error { return rootCmd.Execute() }
