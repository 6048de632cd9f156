package pool

import (
	"bytes"
	"testing"

	"github.com/wippyai/cgfx/errors"
)

func TestTextDedup(t *testing.T) {
	p := New(Text)
	for i := 0; i < 5; i++ {
		p.AddString("bone_a")
	}
	p.AddString("mesh")
	p.AddString("bone_a")

	if p.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", p.Len())
	}
	p.Finalize(0x100)

	first, err := p.OffsetString("bone_a")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		got, err := p.OffsetString("bone_a")
		if err != nil || got != first {
			t.Errorf("OffsetString call %d: got %d/%v, want %d", i, got, err, first)
		}
	}
	if first != 0x100 {
		t.Errorf("bone_a offset: got %#x, want 0x100", first)
	}
	mesh, _ := p.OffsetString("mesh")
	if mesh != 0x100+7 {
		t.Errorf("mesh offset: got %#x, want %#x", mesh, 0x107)
	}

	want := []byte("bone_a\x00mesh\x00")
	if got := p.Bytes(); !bytes.HasPrefix(got, want) {
		t.Errorf("Bytes: got %q, want prefix %q", got, want)
	}
}

func TestBlobPadding(t *testing.T) {
	tests := []struct {
		name  string
		align int
		in    int
		want  int
	}{
		{"16 aligned short", 16, 3, 16},
		{"16 aligned exact", 16, 32, 32},
		{"128 aligned", 128, 130, 256},
		{"128 exact", 128, 128, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Binary, WithBlobAlign(tt.align), WithTail(TailWord))
			p.Add(make([]byte, tt.in))
			p.Finalize(0)
			if got := p.Size() - p.padding; got != tt.want {
				t.Errorf("content: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBlobDedupAfterPadding(t *testing.T) {
	p := New(Binary)
	p.Add([]byte{1, 2, 3})
	p.Add([]byte{1, 2, 3, 0})
	if p.Len() != 1 {
		t.Errorf("Len: got %d, want 1", p.Len())
	}
}

func TestTails(t *testing.T) {
	tests := []struct {
		name    string
		tail    Tail
		base    int
		content string
		padding int
	}{
		{"half block", TailHalfBlock, 0, "abc", 4},
		{"half block aligned", TailHalfBlock, 12, "abc", 8},
		{"word", TailWord, 0, "abc", 4},
		{"word partial", TailWord, 0, "abcde", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Text, WithTail(tt.tail))
			p.AddString(tt.content)
			end := p.Finalize(tt.base)
			want := tt.padding
			if p.padding != want {
				t.Errorf("padding: got %d, want %d", p.padding, want)
			}
			if end != tt.base+len(tt.content)+1+want {
				t.Errorf("end: got %d, want %d", end, tt.base+len(tt.content)+1+want)
			}
		})
	}
}

func TestHalfBlockAlignsEnd(t *testing.T) {
	for base := 0; base < 32; base++ {
		p := New(Text)
		p.AddString("x")
		end := p.Finalize(base)
		if end%16 != 8 {
			t.Errorf("base %d: end %d is not 8 past a 16-byte boundary", base, end)
		}
	}
}

func TestEmptyValuesNotPooled(t *testing.T) {
	p := New(Text)
	p.AddString("")
	p.Add(nil)
	if !p.Empty() {
		t.Error("empty values should not be pooled")
	}
	p.Finalize(0)
	if _, err := p.OffsetString(""); !errors.IsNotFound(err) {
		t.Errorf("OffsetString(\"\"): got %v, want not found", err)
	}
}

func TestOffsetBeforeFinalize(t *testing.T) {
	p := New(Text)
	p.AddString("a")
	if _, err := p.OffsetString("a"); !errors.IsKind(err, errors.KindNotInitialized) {
		t.Errorf("got %v, want not initialized", err)
	}
	p.Finalize(0)
	p.AddString("b")
	if _, err := p.OffsetString("a"); !errors.IsKind(err, errors.KindNotInitialized) {
		t.Errorf("after Add: got %v, want not initialized", err)
	}
}

func TestOffsetMissing(t *testing.T) {
	p := New(Binary)
	p.Add([]byte{1})
	p.Finalize(64)
	if _, err := p.Offset([]byte{2}); !errors.IsNotFound(err) {
		t.Errorf("got %v, want not found", err)
	}
	if p.Base() != 64 {
		t.Errorf("Base: got %d, want 64", p.Base())
	}
}
