package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriterFixedWidths(t *testing.T) {
	w := NewWriter()
	w.Byte(0x01)
	w.Pad(1)
	w.WriteU16LE(0xFEFF)
	w.WriteU32LE(0x05000000)
	w.WriteF32LE(1.0)
	w.WriteBytes([]byte("CGFX"))

	want := []byte{
		0x01, 0x00,
		0xFF, 0xFE,
		0x00, 0x00, 0x00, 0x05,
		0x00, 0x00, 0x80, 0x3F,
		'C', 'G', 'F', 'X',
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("bytes: got % x, want % x", w.Bytes(), want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len: got %d, want %d", w.Len(), len(want))
	}
}

func TestReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU16LE(0xFEFF)
	w.WriteU32LE(0xFFFFFFFF)
	w.WriteF32LE(-2.5)
	w.WriteBytes([]byte("name\x00"))

	r := NewReader(w.Bytes())
	u16, err := r.ReadU16LE()
	if err != nil || u16 != 0xFEFF {
		t.Fatalf("ReadU16LE: got %#x, %v", u16, err)
	}
	s32, err := r.ReadS32LE()
	if err != nil || s32 != -1 {
		t.Fatalf("ReadS32LE: got %d, %v", s32, err)
	}
	f32, err := r.ReadF32LE()
	if err != nil || f32 != -2.5 {
		t.Fatalf("ReadF32LE: got %v, %v", f32, err)
	}
	if r.Position() != 10 {
		t.Errorf("Position: got %d, want 10", r.Position())
	}
	s, err := r.CString(10)
	if err != nil || s != "name" {
		t.Errorf("CString: got %q, %v", s, err)
	}
	if r.Position() != 10 {
		t.Errorf("CString moved position to %d", r.Position())
	}
}

func TestReaderBounds(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})

	if _, err := r.ReadU32LE(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ReadU32LE past end: got %v, want ErrOutOfBounds", err)
	}
	if err := r.Reset(4); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Reset past end: got %v", err)
	}
	if err := r.Reset(3); err != nil {
		t.Errorf("Reset to end: %v", err)
	}
	if _, err := r.ReadByte(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ReadByte at end: got %v", err)
	}
	if _, err := r.CString(0); err == nil {
		t.Error("expected unterminated string error")
	}
}
