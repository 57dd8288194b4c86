package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecords(t *testing.T) {
	table := NewRawTable(
		[]string{"ID", "Old", "New"},
		[][]string{
			{"greeting", "hi", "hello"},
			{"", "short"},
			{"third", "a", "b", "extra"},
		},
	)
	roles := ResolveRoles(table.Headers)

	got := BuildRecords(table, roles)

	want := []PromptRecord{
		{ID: 0, Label: "greeting", HasLabel: true, Before: "hi", After: "hello"},
		{ID: 1, Label: "", HasLabel: true, Before: "short", After: ""},
		{ID: 2, Label: "third", HasLabel: true, Before: "a", After: "b"},
	}
	assert.Equal(t, want, got)
}

func TestBuildRecords_NoLabelColumn(t *testing.T) {
	table := NewRawTable([]string{"before", "after"}, [][]string{{"x", "y"}})

	got := BuildRecords(table, ResolveRoles(table.Headers))

	require.Len(t, got, 1)
	assert.False(t, got[0].HasLabel)
	assert.Empty(t, got[0].Label)
	assert.Equal(t, "Prompt 1", got[0].DisplayLabel())
}

func TestBuildRecords_SingleColumn(t *testing.T) {
	table := NewRawTable([]string{"prompt"}, [][]string{{"only before"}})

	got := BuildRecords(table, ResolveRoles(table.Headers))

	require.Len(t, got, 1)
	assert.Equal(t, "only before", got[0].Before)
	assert.Empty(t, got[0].After)
}

func TestBuildRecords_IDsFollowRowOrder(t *testing.T) {
	const n = 25

	var b strings.Builder
	b.WriteString("before,after\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "b%d,a%d\n", i, i)
	}
	table, err := ParseCSV(strings.NewReader(b.String()), ParseOptions{})
	require.NoError(t, err)

	got := BuildRecords(table, ResolveRoles(table.Headers))

	require.Len(t, got, n)
	for i, rec := range got {
		assert.Equal(t, i, rec.ID)
		assert.Equal(t, fmt.Sprintf("b%d", i), rec.Before)
		assert.Equal(t, fmt.Sprintf("a%d", i), rec.After)
	}
}

func TestPromptRecord_DisplayLabel(t *testing.T) {
	assert.Equal(t, "intro", PromptRecord{ID: 4, Label: "intro", HasLabel: true}.DisplayLabel())
	assert.Equal(t, "Prompt 5", PromptRecord{ID: 4, HasLabel: true}.DisplayLabel())
	assert.Equal(t, "Prompt 1", PromptRecord{}.DisplayLabel())
}
