package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhasePatch,
				Kind:   KindTypeMismatch,
				Path:   []string{"model", "slot[3]"},
				Record: "*schema.Model",
				Detail: "cannot pack",
			},
			contains: []string{"[patch]", "type_mismatch", "model.slot[3]", "*schema.Model", "cannot pack"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[parse]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseWrite,
				Kind:   KindLayout,
				Detail: "position drift",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[write]", "layout", "position drift", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseTrie,
		Kind:  KindNotFound,
		Path:  []string{"bone_c"},
	}

	if !err.Is(&Error{Phase: PhaseTrie, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDict, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseTrie, Kind: KindDuplicateName}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, &Error{Phase: PhaseTrie, Kind: KindNotFound}) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseWrite, KindOverflow).
		Path("mesh", "slot[9]").
		Record("*schema.Mesh").
		Value(300).
		Cause(cause).
		Detail("value %d overflows %s", 300, "uint8").
		Build()

	if err.Phase != PhaseWrite {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseWrite)
	}
	if err.Kind != KindOverflow {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
	}
	if len(err.Path) != 2 || err.Path[0] != "mesh" || err.Path[1] != "slot[9]" {
		t.Errorf("Path = %v, want [mesh slot[9]]", err.Path)
	}
	if err.Record != "*schema.Mesh" {
		t.Errorf("Record = %v, want '*schema.Mesh'", err.Record)
	}
	if err.Value != 300 {
		t.Errorf("Value = %v, want 300", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "value 300 overflows uint8" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("ShapeMismatch", func(t *testing.T) {
		err := ShapeMismatch("*dict.Dict", 8, 7)
		if err.Kind != KindShapeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindShapeMismatch)
		}
		if !strings.Contains(err.Detail, "8 value slots") {
			t.Errorf("Detail = %v, should contain slot count", err.Detail)
		}
	})

	t.Run("MalformedShape", func(t *testing.T) {
		err := MalformedShape("i3i", 1, "repeat count")
		if err.Kind != KindMalformedShape || err.Phase != PhaseShape {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("Oversize", func(t *testing.T) {
		err := Oversize(0x90000, 0x80000)
		if err.Value != 0x90000 {
			t.Errorf("Value = %v, want %d", err.Value, 0x90000)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseWrite, "*schema.Shape", 4, "x", "int32")
		if len(err.Path) != 1 || err.Path[0] != "slot[4]" {
			t.Errorf("Path = %v", err.Path)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseDict, "entry", "bone_c")
		if err.Value != "bone_c" {
			t.Errorf("Value = %v", err.Value)
		}
	})
}

func TestIsKind(t *testing.T) {
	base := NotFound(PhasePool, "string", "missing")
	wrapped := fmt.Errorf("encode: %w", Wrap(PhaseLayout, KindLayout, base, "place record"))

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should see through wrapping and causes")
	}
	if IsOversize(wrapped) {
		t.Error("IsOversize should not match")
	}
	if !IsOversize(Oversize(2, 1)) {
		t.Error("IsOversize should match")
	}
	if !IsShapeMismatch(ShapeMismatch("r", 1, 2)) {
		t.Error("IsShapeMismatch should match")
	}
	if IsKind(errors.New("plain"), KindNotFound) {
		t.Error("plain errors carry no kind")
	}
	if IsKind(nil, KindNotFound) {
		t.Error("nil carries no kind")
	}
}
