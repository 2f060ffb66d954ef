package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	l.Warn.Println("Test Warn")
	l.Info.Println("Test Info")
	l.Err.Println("Test Err")
	out := buf.String()
	for _, want := range []string{"[ Warn ] ", "[ Info ] ", "[ Error ] "} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q is missing prefix %q", out, want)
		}
	}
}

func TestOrDefault(t *testing.T) {
	if OrDefault(nil) == nil {
		t.Fatal("OrDefault(nil) returned nil")
	}
	l := Discard()
	if OrDefault(l) != l {
		t.Fatal("OrDefault must keep a provided logger")
	}
}
