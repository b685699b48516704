package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteBinary(t *testing.T) {
	var buf bytes.Buffer
	if err := write(&buf, []uint16{0xFF00, 0x1234}, false); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0xFF, 0x34, 0x12}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("bytes = % x, want % x", buf.Bytes(), want)
	}
}

func TestWriteHex(t *testing.T) {
	var buf bytes.Buffer
	if err := write(&buf, []uint16{0xF00F, 0x0a0b}, true); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "F00F\n0A0B\n" {
		t.Errorf("hex = %q", got)
	}
}

func TestSourceQuadrants(t *testing.T) {
	img, err := source("quadrants")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("bounds = %v, want 32x32", b)
	}
	if _, err := source("missing.png"); err == nil || !strings.Contains(err.Error(), "missing.png") {
		t.Errorf("source(missing.png) err = %v", err)
	}
}
