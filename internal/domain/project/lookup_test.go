package project_test

import (
	"testing"

	"github.com/ma6uchi/freee-api-export/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	idx := project.NewIndex([]project.Project{
		{ID: 1, Name: "Alpha", Code: "P-001"},
		{ID: 2, Name: "Beta", Code: "P-002"},
	})

	p, ok := idx.Get(1)
	require.True(t, ok)
	require.Equal(t, "Alpha", p.Name)

	_, ok = idx.Get(99)
	require.False(t, ok)
}

func TestNewIndex_DuplicateIDsLastWins(t *testing.T) {
	idx := project.NewIndex([]project.Project{
		{ID: 1, Name: "First"},
		{ID: 1, Name: "Second"},
	})

	p, ok := idx.Get(1)
	require.True(t, ok)
	require.Equal(t, "Second", p.Name)
}

func TestNewIndex_Empty(t *testing.T) {
	idx := project.NewIndex(nil)
	_, ok := idx.Get(1)
	require.False(t, ok)
}
