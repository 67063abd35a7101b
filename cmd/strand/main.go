// Package main provides the strand runtime CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

var cfgFile string

func main() {
	klog.InitFlags(nil)

	root := &cobra.Command{
		Use:   "strand",
		Short: "strand - tensor operator-kernel runtime",
		Long:  "strand executes tensor operator kernels (concat and friends) on CPU and WebGPU devices.",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDevicesCmd())
	root.AddCommand(newBenchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("strand %s\n", version)
		},
	}
}
