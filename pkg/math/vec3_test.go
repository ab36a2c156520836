package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	got := a.Add(b)
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	got := v.Length()
	want := float32(7)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Vec3{}.Normalize() = %v, want zero vector", zero)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, 3}
	b := Vec3{2, 4, 3}
	if got := a.Min(b); got != (Vec3{1, 4, 3}) {
		t.Errorf("Vec3.Min() = %v, want {1 4 3}", got)
	}
	if got := a.Max(b); got != (Vec3{2, 5, 3}) {
		t.Errorf("Vec3.Max() = %v, want {2 5 3}", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}
	got := a.Lerp(b, 0.5)
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}
