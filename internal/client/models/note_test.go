package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoteInput_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   NoteInput
		want NoteInput
	}{
		{name: "trims both", in: NoteInput{Title: "  A ", Content: "\nx\n"}, want: NoteInput{Title: "A", Content: "x"}},
		{name: "empty title becomes Untitled", in: NoteInput{Title: "   ", Content: "body"}, want: NoteInput{Title: DefaultTitle, Content: "body"}},
		{name: "empty content kept empty", in: NoteInput{Title: "t"}, want: NoteInput{Title: "t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestNoteInput_Blank(t *testing.T) {
	require.True(t, NoteInput{Title: " ", Content: "\t"}.Blank())
	require.False(t, NoteInput{Content: "x"}.Blank())
}

func TestNote_ResetClientAttrs(t *testing.T) {
	n := Note{Category: "work", Tags: []string{"a"}, Priority: PriorityHigh, Favorite: true}
	n.ResetClientAttrs()

	require.Empty(t, n.Category)
	require.Nil(t, n.Tags)
	require.Equal(t, PriorityMedium, n.Priority)
	require.False(t, n.Favorite)
}

func TestNote_Valid(t *testing.T) {
	now := time.Now()
	require.True(t, Note{CreatedAt: now, UpdatedAt: now}.Valid())
	require.True(t, Note{CreatedAt: now, UpdatedAt: now.Add(time.Second)}.Valid())
	require.False(t, Note{CreatedAt: now, UpdatedAt: now.Add(-time.Second)}.Valid())
}

func TestNote_CloneCopiesTags(t *testing.T) {
	n := Note{Tags: []string{"a", "b"}}
	c := n.Clone()
	c.Tags[0] = "z"
	require.Equal(t, "a", n.Tags[0])
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority(" HIGH ")
	require.True(t, ok)
	require.Equal(t, PriorityHigh, p)

	_, ok = ParsePriority("urgent")
	require.False(t, ok)
}

func TestResult(t *testing.T) {
	ok := Ok(42)
	v, err := ok.Unwrap()
	require.NoError(t, err)
	require.True(t, ok.OK())
	require.Equal(t, 42, v)

	failed := Fail[int]("boom")
	v, err = failed.Unwrap()
	require.EqualError(t, err, "boom")
	require.False(t, failed.OK())
	require.Equal(t, "boom", failed.Message())
	require.Zero(t, v)
}

func TestStatsOf(t *testing.T) {
	s := StatsOf("  hello   world\nagain ")
	require.Equal(t, 3, s.Words)
	require.Equal(t, 21, s.Chars)
	require.False(t, s.OverLimit)

	require.True(t, StatsOf(strings.Repeat("a", ContentSoftLimit+1)).OverLimit)
	require.False(t, StatsOf(strings.Repeat("a", ContentSoftLimit)).OverLimit)
}
