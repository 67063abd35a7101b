package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/strand-ml/strand/internal/backend/cpu"
	"github.com/strand-ml/strand/internal/backend/webgpu"
	"github.com/strand-ml/strand/internal/config"
	"github.com/strand-ml/strand/internal/kernels"
	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/stream"
	"github.com/strand-ml/strand/internal/tensor"
)

// benchBackend is what the benchmark needs from a device backend.
type benchBackend interface {
	op.Allocator
	Name() string
	Device() tensor.Device
	NewStream() *stream.Stream
	RegisterKernels(r *op.Registry)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a concat micro-benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runBench(cfg)
		},
	}
	cmd.Flags().String("device", "cpu", "device to bench (cpu, webgpu)")
	cmd.Flags().Int("axis", 0, "concatenation axis")
	cmd.Flags().Int("repeat", 100, "iterations")
	cmd.Flags().StringSlice("shapes", nil, "input shapes, e.g. 256x512,256x512")
	return cmd
}

func parseShape(s string) (tensor.Shape, error) {
	parts := strings.Split(s, "x")
	shape := make(tensor.Shape, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid shape %q: %w", s, err)
		}
		shape[i] = n
	}
	return shape, nil
}

func openBackend(name string) (benchBackend, error) {
	switch strings.ToLower(name) {
	case "cpu":
		return cpu.New(), nil
	case "webgpu":
		b, err := webgpu.New()
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown device %q", name)
	}
}

func runBench(cfg *config.Config) error {
	backend, err := openBackend(cfg.Device)
	if err != nil {
		return err
	}

	registry := op.NewRegistry()
	backend.RegisterKernels(registry)

	inputs := make([]*tensor.RawTensor, len(cfg.Shapes))
	totalBytes := 0
	for i, s := range cfg.Shapes {
		shape, perr := parseShape(s)
		if perr != nil {
			return perr
		}
		in, aerr := backend.Allocate(shape, tensor.Float32)
		if aerr != nil {
			return aerr
		}
		data := in.AsFloat32()
		for j := range data {
			data[j] = rand.Float32()
		}
		inputs[i] = in
		totalBytes += in.ByteSize()
	}

	node := &op.Node{
		OpType:     kernels.ConcatTrainingOp,
		Name:       "bench_concat",
		Outputs:    []string{"concat_result", "per_input_length"},
		Attributes: []op.Attribute{{Name: "axis", I: int64(cfg.Axis)}},
	}
	kernel, err := registry.Build(node, backend.Device())
	if err != nil {
		return err
	}

	klog.V(2).Infof("bench: %d inputs on %s, axis %d, %d iterations",
		len(inputs), backend.Name(), cfg.Axis, cfg.Repeat)

	var outShape tensor.Shape
	start := time.Now()
	for i := 0; i < cfg.Repeat; i++ {
		st := backend.NewStream()
		ctx := op.NewContext(inputs, len(node.Outputs), backend, st)
		if cerr := kernel.Compute(ctx); cerr != nil {
			return cerr
		}
		if serr := st.Synchronize(); serr != nil {
			return serr
		}
		if cerr := st.Close(); cerr != nil {
			return cerr
		}
		outShape = ctx.Output(0).Shape()
	}
	elapsed := time.Since(start)

	perOp := elapsed / time.Duration(cfg.Repeat)
	mbps := float64(totalBytes) * float64(cfg.Repeat) / elapsed.Seconds() / (1 << 20)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Device", "Inputs", "Axis", "Output", "Iterations", "Total", "Per op", "MB/s"})
	t.AppendRow(table.Row{
		backend.Name(),
		strings.Join(cfg.Shapes, " + "),
		cfg.Axis,
		fmt.Sprint(outShape),
		cfg.Repeat,
		elapsed.Round(time.Microsecond),
		perOp.Round(time.Nanosecond),
		fmt.Sprintf("%.1f", mbps),
	})
	t.Render()
	return nil
}
