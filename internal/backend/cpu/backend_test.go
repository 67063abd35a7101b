package cpu

import (
	"testing"

	"github.com/strand-ml/strand/internal/kernels"
	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

func TestBackendMetadata(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want CPU", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %s, want CPU", backend.Device())
	}
}

func TestBackendAllocate(t *testing.T) {
	backend := New()
	raw, err := backend.Allocate(tensor.Shape{2, 2}, tensor.Float32)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("allocated tensor on %s, want CPU", raw.Device())
	}
}

func TestRegisterKernels(t *testing.T) {
	backend := New()
	registry := op.NewRegistry()
	backend.RegisterKernels(registry)

	for _, opType := range []string{kernels.ConcatTrainingOp, kernels.SplitTrainingOp} {
		node := &op.Node{
			OpType:     opType,
			Attributes: []op.Attribute{{Name: "axis", I: 0}},
		}
		if _, err := registry.Build(node, tensor.CPU); err != nil {
			t.Errorf("Build(%s): %v", opType, err)
		}
	}
}

// TestExecutorConcatGeometry drives the executor directly with a hand-built
// plan to pin the block-copy arithmetic.
func TestExecutorConcatGeometry(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 1}, tensor.Uint8, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Uint8, tensor.CPU)
	copy(a.AsUint8(), []uint8{1, 2})
	copy(b.AsUint8(), []uint8{10, 11, 20, 21})

	out, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Uint8, tensor.CPU)

	plan := kernels.Plan{
		OutShape:  tensor.Shape{2, 3},
		DType:     tensor.Uint8,
		Axis:      1,
		Outer:     2,
		AxisSizes: []int{1, 2},
		RunBytes:  []int{1, 2},
		DstPitch:  3,
	}

	st := backend.NewStream()
	defer st.Close()

	if err := (executor{}).Concat(st, []*tensor.RawTensor{a, b}, out, plan); err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if err := st.Synchronize(); err != nil {
		t.Fatalf("Synchronize: %v", err)
	}

	want := []uint8{1, 10, 11, 2, 20, 21}
	got := out.AsUint8()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("output = %v, want %v", got, want)
		}
	}
}

func TestExecutorSplitInverts(t *testing.T) {
	backend := New()

	in, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Uint8, tensor.CPU)
	copy(in.AsUint8(), []uint8{1, 10, 11, 2, 20, 21})

	p0, _ := tensor.NewRaw(tensor.Shape{2, 1}, tensor.Uint8, tensor.CPU)
	p1, _ := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Uint8, tensor.CPU)

	plan := kernels.Plan{
		OutShape:  tensor.Shape{2, 3},
		DType:     tensor.Uint8,
		Axis:      1,
		Outer:     2,
		AxisSizes: []int{1, 2},
		RunBytes:  []int{1, 2},
		DstPitch:  3,
	}

	st := backend.NewStream()
	defer st.Close()

	if err := (executor{}).Split(st, in, []*tensor.RawTensor{p0, p1}, plan); err != nil {
		t.Fatalf("Split: %v", err)
	}
	if err := st.Synchronize(); err != nil {
		t.Fatalf("Synchronize: %v", err)
	}

	wantP0 := []uint8{1, 2}
	wantP1 := []uint8{10, 11, 20, 21}
	for i, v := range wantP0 {
		if p0.AsUint8()[i] != v {
			t.Fatalf("part 0 = %v, want %v", p0.AsUint8(), wantP0)
		}
	}
	for i, v := range wantP1 {
		if p1.AsUint8()[i] != v {
			t.Fatalf("part 1 = %v, want %v", p1.AsUint8(), wantP1)
		}
	}
}
