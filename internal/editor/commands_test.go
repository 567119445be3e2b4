package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modalcore/internal/completion"
	"github.com/dshills/modalcore/internal/vfs"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		name string
		bang bool
		arg  string
	}{
		{"", "", false, ""},
		{":q", "q", false, ""},
		{"  q!  ", "q", true, ""},
		{"e notes.txt", "e", false, "notes.txt"},
		{"bd! 3", "bd", true, "3"},
		{"b2", "b", false, "2"},
		{"set sw=2 nonu", "set", false, "sw=2 nonu"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, bang, arg := parseCommand(tt.line)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.bang, bang)
			assert.Equal(t, tt.arg, arg)
		})
	}
}

func TestExecuteCommandErrors(t *testing.T) {
	ed, _ := newTestEditor(t, nil)
	_, err := ed.CreateBuffer("")
	require.NoError(t, err)

	tests := []struct {
		line string
		want error
	}{
		{"frobnicate", ErrUnknownCommand},
		{"w", ErrNoFileName},
		{"w!", ErrInvalidArgument},
		{"e", ErrNoFileName},
		{"b", ErrInvalidArgument},
		{"b x", ErrInvalidArgument},
		{"b 9", ErrNoSuchBuffer},
		{"bd 9", ErrNoSuchBuffer},
		{"set bogus", ErrUnknownOption},
		{"set nobogus", ErrUnknownOption},
		{"set nu=3", ErrInvalidArgument},
		{"set sw=0", ErrInvalidArgument},
		{"set sw=abc", ErrInvalidArgument},
		{"set nots", ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.ErrorIs(t, ed.ExecuteCommand(tt.line), tt.want)
		})
	}
	assert.NoError(t, ed.ExecuteCommand("   "))
}

func TestQuitCommands(t *testing.T) {
	ed, _ := newTestEditor(t, nil)
	_, err := ed.CreateBuffer("")
	require.NoError(t, err)
	ed.CurrentBuffer().InsertChar('x')

	require.ErrorIs(t, ed.ExecuteCommand("q"), ErrBufferModified)
	assert.False(t, ed.QuitRequested())

	require.NoError(t, ed.ExecuteCommand("q!"))
	assert.True(t, ed.QuitRequested())
}

func TestWriteCommands(t *testing.T) {
	ed, fs := newTestEditor(t, map[string]string{"/work/a.txt": "alpha\n"})
	_, err := ed.CreateBuffer("/work/a.txt")
	require.NoError(t, err)
	b := ed.CurrentBuffer()
	b.MoveToLineEnd()
	b.InsertText("!")

	require.NoError(t, ed.ExecuteCommand("w"))
	assert.False(t, b.Modified())
	data, err := fs.ReadFile("/work/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha!\n", string(data))
	assert.Equal(t, `"a.txt" 1L written`, ed.StatusMessage())

	require.NoError(t, ed.ExecuteCommand("w /work/copy.txt"))
	data, err = fs.ReadFile("/work/copy.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha!\n", string(data))

	b.InsertChar('?')
	require.NoError(t, ed.ExecuteCommand("wq"))
	assert.True(t, ed.QuitRequested())
	assert.False(t, b.Modified())
}

func TestEditCommand(t *testing.T) {
	ed, _ := newTestEditor(t, map[string]string{"/work/a.txt": "alpha\nbeta\n"})
	_, err := ed.CreateBuffer("")
	require.NoError(t, err)

	require.NoError(t, ed.ExecuteCommand("e /work/a.txt"))
	assert.Equal(t, 2, ed.CurrentBufferID())
	assert.Equal(t, `"a.txt" 2L`, ed.StatusMessage())

	require.NoError(t, ed.ExecuteCommand("b 1"))
	require.NoError(t, ed.ExecuteCommand("e /work/../work/a.txt"))
	assert.Equal(t, 2, ed.CurrentBufferID(), "an open file is reused")
	assert.Equal(t, []int{1, 2}, ed.BufferIDs())

	require.NoError(t, ed.ExecuteCommand("e /work/new.txt"))
	assert.Equal(t, 3, ed.CurrentBufferID())
	assert.Equal(t, "/work/new.txt", ed.CurrentBuffer().Path())
	assert.Contains(t, ed.StatusMessage(), "[New File]")

	// e! reloads and discards changes.
	require.NoError(t, ed.ExecuteCommand("b 2"))
	ed.CurrentBuffer().DeleteLine()
	require.NoError(t, ed.ExecuteCommand("e!"))
	assert.Equal(t, []string{"alpha", "beta"}, ed.CurrentBuffer().Lines())
	assert.False(t, ed.CurrentBuffer().Modified())
	assert.Equal(t, 2, ed.CurrentBuffer().ID())
}

func TestBufferCommands(t *testing.T) {
	ed, _ := newTestEditor(t, map[string]string{"/work/a.txt": "alpha\n"})
	_, err := ed.CreateBuffer("")
	require.NoError(t, err)
	_, err = ed.CreateBuffer("/work/a.txt")
	require.NoError(t, err)
	ed.CurrentBuffer().InsertChar('x')

	require.NoError(t, ed.ExecuteCommand("ls"))
	assert.Equal(t, "Buffers: 1:[No Name] [2:a.txt+]", ed.StatusMessage())

	require.NoError(t, ed.ExecuteCommand("bn"))
	assert.Equal(t, 1, ed.CurrentBufferID())
	require.NoError(t, ed.ExecuteCommand("bprev"))
	assert.Equal(t, 2, ed.CurrentBufferID())

	require.ErrorIs(t, ed.ExecuteCommand("bd"), ErrBufferModified)
	require.NoError(t, ed.ExecuteCommand("bd!"))
	assert.Equal(t, []int{1}, ed.BufferIDs())
}

func TestSetCommand(t *testing.T) {
	ed, _ := newTestEditor(t, nil)
	_, err := ed.CreateBuffer("")
	require.NoError(t, err)

	require.NoError(t, ed.ExecuteCommand("set nu rnu sw=2 ts=8"))
	s := ed.Settings()
	assert.True(t, s.Number)
	assert.True(t, s.RelativeNumber)
	assert.Equal(t, 2, s.ShiftWidth)
	assert.Equal(t, 8, s.TabStop)
	assert.Equal(t, 2, ed.CurrentBuffer().ShiftWidth())

	require.NoError(t, ed.ExecuteCommand("se nonumber nowrap"))
	assert.False(t, ed.Settings().Number)
	assert.False(t, ed.Settings().Wrap)

	require.NoError(t, ed.ExecuteCommand("set ts?"))
	assert.Equal(t, "tabstop=8", ed.StatusMessage())
	require.NoError(t, ed.ExecuteCommand("set sw"))
	assert.Equal(t, "shiftwidth=2", ed.StatusMessage())
	require.NoError(t, ed.ExecuteCommand("set wrap?"))
	assert.Equal(t, "nowrap", ed.StatusMessage())

	require.NoError(t, ed.ExecuteCommand("set ul=3"))
	b := ed.CurrentBuffer()
	for range 5 {
		b.InsertChar('a')
	}
	assert.Equal(t, 3, b.UndoCount())
}

func TestDefaultPathResolver(t *testing.T) {
	resolve := DefaultPathResolver(vfs.NewMemFS())

	got, err := resolve("work/../a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/a.txt", got)

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = resolve("~/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes.txt"), got)
}

func TestEditorOptions(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/proj/notes.txt", "n\n"))
	var resolved []string
	resolve := func(p string) (string, error) {
		resolved = append(resolved, p)
		return "/proj/" + p, nil
	}
	table := completion.NewTable([]completion.Command{
		{Name: "edit", Aliases: []string{"e"}, Bang: true},
	}, nil)
	settings := DefaultSettings()
	settings.ShiftWidth = 2

	ed := New(WithFS(fs), WithPathResolver(resolve), WithCommandTable(table), WithSettings(settings))
	assert.Equal(t, 2, ed.Settings().ShiftWidth)

	require.NoError(t, ed.ExecuteCommand("e notes.txt"))
	assert.Equal(t, []string{"notes.txt"}, resolved)
	assert.Equal(t, "/proj/notes.txt", ed.CurrentBuffer().Path())

	assert.ErrorIs(t, ed.ExecuteCommand("quit"), ErrUnknownCommand, "only the installed table is consulted")
	assert.ErrorIs(t, ed.ExecuteCommand("set sw=4"), ErrUnknownCommand)
}
