package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSuggest(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		input string
		want  []string
	}{
		{"q", []string{"q", "q!", "quit", "quit!"}},
		{":bd", []string{"bd", "bd!", "bdelete", "bdelete!"}},
		{"BN", []string{"bn", "bnext"}},
		{"set nu", []string{"set nu", "set number"}},
		{"set ts", []string{"set ts="}},
		{"zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Suggest(tt.input))
		})
	}
}

func TestTableCanonical(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"q", "quit", true},
		{"q!", "quit", true},
		{"x", "wq", true},
		{"bprev", "bprevious", true},
		{"ls", "buffers", true},
		{"nope", "", false},
	}

	for _, tt := range tests {
		got, ok := table.Canonical(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	cmd, ok := table.Command("bd")
	require.True(t, ok)
	assert.True(t, cmd.Bang)
	assert.Equal(t, "buffer", cmd.Category)
}

func TestTableSettings(t *testing.T) {
	table := DefaultTable()

	s, ok := table.Setting("ts")
	require.True(t, ok)
	assert.Equal(t, "tabstop", s.Name)
	assert.Equal(t, SettingInt, s.Kind)

	s, ok = table.Setting("number")
	require.True(t, ok)
	assert.Equal(t, SettingBool, s.Kind)

	_, ok = table.Setting("nonumber")
	assert.False(t, ok, "the no prefix is parsed by :set, not stored")
}

func TestTableIsImmutable(t *testing.T) {
	commands := []Command{{Name: "quit", Aliases: []string{"q"}}}
	table := NewTable(commands, nil)

	commands[0].Name = "changed"
	got := table.Commands()
	got[0].Name = "also changed"

	assert.Equal(t, "quit", table.Commands()[0].Name)
	canon, ok := table.Canonical("q")
	assert.True(t, ok)
	assert.Equal(t, "quit", canon)
}

func TestCompletionCycle(t *testing.T) {
	c := New(DefaultTable())
	assert.False(t, c.Active())
	assert.False(t, c.HasMatches())

	c.Start("b")
	require.True(t, c.HasMatches())
	assert.Equal(t, "b", c.Prefix())
	assert.Len(t, c.Matches(), 12)

	sel, _ := c.Selected()
	assert.Equal(t, "b", sel)

	c.Next()
	sel, _ = c.Selected()
	assert.Equal(t, "bd", sel)

	c.Prev()
	c.Prev()
	sel, _ = c.Selected()
	assert.Equal(t, "bprevious", sel, "Prev wraps to the last match")

	window, idx := c.Visible(5)
	assert.Equal(t, []string{"buffer", "bdelete", "buffers", "bdelete!", "bprevious"}, window)
	assert.Equal(t, 4, idx)

	got, ok := c.Accept()
	assert.True(t, ok)
	assert.Equal(t, "bprevious", got)
	assert.False(t, c.Active())
}

func TestCompletionWithoutMatches(t *testing.T) {
	c := New(DefaultTable())
	c.Start("zzz")

	assert.True(t, c.Active())
	assert.False(t, c.HasMatches())
	c.Next()
	c.Prev()

	_, ok := c.Accept()
	assert.False(t, ok)
	assert.False(t, c.Active())

	window, _ := c.Visible(3)
	assert.Empty(t, window)
}
