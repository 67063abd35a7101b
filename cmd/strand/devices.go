package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strand-ml/strand/internal/backend/cpu"
	"github.com/strand-ml/strand/internal/backend/webgpu"
	"github.com/strand-ml/strand/internal/op"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List available devices and their registered kernels",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := op.NewRegistry()
			cpu.New().RegisterKernels(registry)

			gpuAvailable := webgpu.IsAvailable()
			if gpuAvailable {
				gpu, err := webgpu.New()
				if err != nil {
					return err
				}
				defer gpu.Release()
				gpu.RegisterKernels(registry)
			}

			fmt.Println("devices:")
			fmt.Println("  CPU: available")
			fmt.Printf("  WebGPU: available=%v\n", gpuAvailable)
			fmt.Println("kernels:")
			for _, o := range registry.SupportedOps() {
				fmt.Printf("  %s\n", o)
			}
			return nil
		},
	}
}
