package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	if got := (Vector3{}).Normalize(); got != (Vector3{}) {
		t.Errorf("Normalize of zero vector: expected zero, got %v", got)
	}
}

func TestVector3Angle(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vector3
		expected float64
	}{
		{"orthogonal", NewVector3(1, 0, 0), NewVector3(0, 1, 0), math.Pi / 2},
		{"same", NewVector3(2, 0, 0), NewVector3(5, 0, 0), 0},
		{"opposite", NewVector3(1, 0, 0), NewVector3(-3, 0, 0), math.Pi},
		{"diagonal", NewVector3(1, 0, 0), NewVector3(1, 1, 0), math.Pi / 4},
		{"zero", NewVector3(0, 0, 0), NewVector3(1, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Angle(tt.b)
			if math.Abs(got-tt.expected) > 1e-10 {
				t.Errorf("Angle failed: expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestVector3Perpendicular(t *testing.T) {
	inputs := []Vector3{
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(0, 0, 1),
		NewVector3(1, 2, 3),
		NewVector3(-4, 0.5, 0.25),
	}

	for _, v := range inputs {
		p := v.Perpendicular()
		if math.Abs(p.Length()-1) > 1e-10 {
			t.Errorf("Perpendicular(%v) is not a unit vector: %v", v, p)
		}
		if math.Abs(p.Dot(v)) > 1e-10 {
			t.Errorf("Perpendicular(%v) = %v is not perpendicular", v, p)
		}
	}
}

func TestVector3Neg(t *testing.T) {
	v := NewVector3(1, -2, 3)
	expected := NewVector3(-1, 2, -3)
	if got := v.Neg(); got != expected {
		t.Errorf("Neg failed: expected %v, got %v", expected, got)
	}
}
