package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	if !r.Shape().Equal(Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", r.Shape())
	}
	if r.DType() != Float32 {
		t.Errorf("dtype = %s, want float32", r.DType())
	}
	if r.Device() != CPU {
		t.Errorf("device = %s, want CPU", r.Device())
	}
	if r.ByteSize() != 24 {
		t.Errorf("byte size = %d, want 24", r.ByteSize())
	}

	data := r.AsFloat32()
	if len(data) != 6 {
		t.Fatalf("len(AsFloat32()) = %d, want 6", len(data))
	}
	for i, v := range data {
		if v != 0 {
			t.Errorf("element %d = %v, want zeroed memory", i, v)
		}
	}
}

func TestNewRawEmpty(t *testing.T) {
	r, err := NewRaw(Shape{0}, Float32, CPU)
	if err != nil {
		t.Fatalf("empty shape must be allocatable: %v", err)
	}
	if r.NumElements() != 0 || r.ByteSize() != 0 {
		t.Errorf("empty tensor has %d elements, %d bytes", r.NumElements(), r.ByteSize())
	}
	if got := r.AsFloat32(); len(got) != 0 {
		t.Errorf("AsFloat32 on empty tensor = %v, want empty", got)
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, -3}, Float32, CPU); err == nil {
		t.Fatal("negative dimension must be rejected")
	}
}

func TestRawTypedViews(t *testing.T) {
	r, err := NewRaw(Shape{4}, Int64, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	v := r.AsInt64()
	v[0], v[3] = -7, 42

	again := r.AsInt64()
	if again[0] != -7 || again[3] != 42 {
		t.Errorf("view does not alias storage: %v", again)
	}

	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on int64 tensor should panic")
		}
	}()
	r.AsFloat32()
}

func TestRawIsUnique(t *testing.T) {
	r, err := NewRaw(Shape{2}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if !r.IsUnique() {
		t.Fatal("fresh tensor should hold the only reference")
	}

	c := r.Clone()
	if r.IsUnique() || c.IsUnique() {
		t.Error("clones share the buffer, neither is unique")
	}

	c.Release()
	if !r.IsUnique() {
		t.Error("releasing the clone should restore uniqueness")
	}
}

func TestRawCloneSharesBuffer(t *testing.T) {
	r, err := NewRaw(Shape{3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	r.AsFloat32()[1] = 5

	c := r.Clone()
	if c.AsFloat32()[1] != 5 {
		t.Error("clone should share the buffer")
	}
	c.AsFloat32()[1] = 9
	if r.AsFloat32()[1] != 9 {
		t.Error("writes through the clone should be visible in the original")
	}
	c.Release()
	if r.AsFloat32()[1] != 9 {
		t.Error("buffer must survive while a reference remains")
	}
}
