package op

import "testing"

func TestAttrHelpers(t *testing.T) {
	node := &Node{
		OpType: "ConcatTraining",
		Attributes: []Attribute{
			{Name: "axis", I: -1},
			{Name: "split", Ints: []int64{3, 5}},
		},
	}

	if v, ok := GetAttrInt(node, "axis"); !ok || v != -1 {
		t.Errorf("GetAttrInt(axis) = %d, %v", v, ok)
	}
	if _, ok := GetAttrInt(node, "missing"); ok {
		t.Error("GetAttrInt should report absence")
	}

	ints := GetAttrInts(node, "split")
	if len(ints) != 2 || ints[0] != 3 || ints[1] != 5 {
		t.Errorf("GetAttrInts(split) = %v", ints)
	}
	if GetAttrInts(node, "missing") != nil {
		t.Error("GetAttrInts of absent attribute should be nil")
	}
}
