package index

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindAuto, "AUTO": KindAuto, " brute ": KindBrute, "cover": KindCover} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKind("flann"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestKindResolve(t *testing.T) {
	if got := KindAuto.Resolve(100, 32); got != KindBrute {
		t.Fatalf("small collection resolved to %v", got)
	}
	if got := KindAuto.Resolve(5000, 64); got != KindCover {
		t.Fatalf("large collection resolved to %v", got)
	}
	if got := KindAuto.Resolve(5000, 512); got != KindBrute {
		t.Fatalf("sparse collection resolved to %v", got)
	}
	if got := KindCover.Resolve(1, 1); got != KindCover {
		t.Fatalf("explicit kind not kept: %v", got)
	}
}

func TestDimension(t *testing.T) {
	if d, err := Dimension(nil); err != nil || d != 0 {
		t.Fatalf("Dimension(nil) = %d, %v", d, err)
	}
	if d, err := Dimension([][]float32{{1, 2}, {3, 4}}); err != nil || d != 2 {
		t.Fatalf("Dimension = %d, %v", d, err)
	}
	if _, err := Dimension([][]float32{{1, 2}, {3}}); !errors.Is(err, ErrDimension) {
		t.Fatalf("err = %v, want ErrDimension", err)
	}
}
