package mode

import (
	"testing"

	"github.com/dshills/modalcore/internal/input/vim"
)

func TestCursorStyleString(t *testing.T) {
	tests := []struct {
		style CursorStyle
		want  string
	}{
		{CursorBlock, "block"},
		{CursorBar, "bar"},
		{CursorUnderline, "underline"},
		{CursorStyle(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.style.String(); got != tt.want {
			t.Errorf("CursorStyle(%d).String() = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestModeNames(t *testing.T) {
	tests := []struct {
		mode  Mode
		name  string
		style CursorStyle
	}{
		{Normal(), ModeNormal, CursorBlock},
		{Insert(), ModeInsert, CursorBar},
		{Command(), ModeCommand, CursorBar},
		{Visual(), ModeVisual, CursorBlock},
		{VisualLine(), ModeVisualLine, CursorBlock},
		{VisualBlock(), ModeVisualBlock, CursorBlock},
		{OperatorPending(vim.OpDelete, 0), ModeOperatorPending, CursorUnderline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
			if got := tt.mode.CursorStyle(); got != tt.style {
				t.Errorf("CursorStyle() = %v, want %v", got, tt.style)
			}
			kind, ok := KindFromName(tt.name)
			if !ok || kind != tt.mode.Kind() {
				t.Errorf("KindFromName(%q) = %v, %v", tt.name, kind, ok)
			}
		})
	}

	if _, ok := KindFromName("replace"); ok {
		t.Error("replace mode should not parse")
	}
	if Kind(200).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}

func TestOperatorPending(t *testing.T) {
	m := OperatorPending(vim.OpYank, 3)

	op, count, ok := m.Operator()
	if !ok || op != vim.OpYank || count != 3 {
		t.Errorf("Operator() = %v, %d, %v", op, count, ok)
	}
	if m.String() != "operator-pending(yank)" {
		t.Errorf("String() = %q", m.String())
	}
	if m == Normal() {
		t.Error("pending mode equals normal")
	}
	if OperatorPending(vim.OpYank, 3) != m {
		t.Error("equal modes should compare equal")
	}

	if _, _, ok := Normal().Operator(); ok {
		t.Error("normal mode has no operator")
	}
	if got := OperatorPending(vim.OpNone, 4); got != Normal() {
		t.Errorf("OperatorPending(OpNone) = %v, want normal", got)
	}
	if _, count, _ := OperatorPending(vim.OpDelete, -2).Operator(); count != 0 {
		t.Errorf("negative count kept: %d", count)
	}
}

func TestIsVisual(t *testing.T) {
	for _, m := range []Mode{Visual(), VisualLine(), VisualBlock()} {
		if !m.IsVisual() {
			t.Errorf("%v should be visual", m)
		}
	}
	for _, m := range []Mode{Normal(), Insert(), Command(), OperatorPending(vim.OpChange, 0)} {
		if m.IsVisual() {
			t.Errorf("%v should not be visual", m)
		}
	}
	if Insert().DisplayName() != "-- INSERT --" || Normal().DisplayName() != "" {
		t.Error("unexpected display names")
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 7 {
		t.Fatalf("len(Kinds()) = %d, want 7", len(kinds))
	}
	for _, k := range kinds {
		if k.String() == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
}
