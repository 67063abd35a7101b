package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"scalar", Shape{}, 1},
		{"vector", Shape{5}, 5},
		{"matrix", Shape{2, 3}, 6},
		{"empty dim", Shape{4, 0, 2}, 0},
		{"4d", Shape{2, 3, 4, 5}, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.NumElements(); got != tt.want {
				t.Errorf("NumElements() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 0, 3}).Validate(); err != nil {
		t.Errorf("zero-size dimension should be valid, got %v", err)
	}
	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("negative dimension should be invalid")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Fatalf("strides = %v, want %v", strides, want)
		}
	}
}

func TestShapeNormalizeAxis(t *testing.T) {
	s := Shape{2, 3, 4}

	tests := []struct {
		axis    int
		want    int
		wantErr bool
	}{
		{0, 0, false},
		{2, 2, false},
		{-1, 2, false},
		{-3, 0, false},
		{3, 0, true},
		{-4, 0, true},
	}

	for _, tt := range tests {
		got, err := s.NormalizeAxis(tt.axis)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeAxis(%d): expected error", tt.axis)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeAxis(%d): %v", tt.axis, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeAxis(%d) = %d, want %d", tt.axis, got, tt.want)
		}
	}
}

func TestShapeEqualClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatal("clone should equal original")
	}
	c[0] = 9
	if s[0] != 2 {
		t.Fatal("clone must not alias original")
	}
	if s.Equal(Shape{2, 3, 1}) {
		t.Error("shapes of different rank must not be equal")
	}
}
