package dirset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/seedsync/pkg/dirset"
)

func TestSetCanonicalKeys(t *testing.T) {
	s := dirset.New("/nas/projects/2024_01_Alpha/")

	assert.True(t, s.Has("/nas/projects/2024_01_Alpha"))
	assert.True(t, s.Has("/nas/projects/./2024_01_Alpha"))
	assert.True(t, s.Has("/nas/other/../projects/2024_01_Alpha"))
	assert.False(t, s.Has("/nas/projects/2024_01_alpha"))
}

func TestSetAddCollapsesDuplicates(t *testing.T) {
	s := dirset.New()
	assert.True(t, s.Add("/nas/a"))
	assert.False(t, s.Add("/nas/a/"))
	assert.False(t, s.Add("/nas//a"))
	assert.Equal(t, 1, s.Len())
}

func TestSetDifference(t *testing.T) {
	expected := dirset.New("/nas/a", "/nas/b", "/nas/c")
	actual := dirset.New("/nas/b", "/nas/d")

	missing := expected.Difference(actual)
	assert.Equal(t, []string{"/nas/a", "/nas/c"}, missing.Sorted())

	// inputs are untouched
	assert.Equal(t, 3, expected.Len())
	assert.Equal(t, 2, actual.Len())

	assert.Equal(t, expected.Sorted(), expected.Difference(nil).Sorted())
}

func TestSetUnion(t *testing.T) {
	u := dirset.New("/nas/a").Union(dirset.New("/nas/b", "/nas/a"))
	assert.Equal(t, []string{"/nas/a", "/nas/b"}, u.Sorted())
}

func TestSetSortedEmpty(t *testing.T) {
	assert.Empty(t, dirset.New().Sorted())
	assert.NotNil(t, dirset.New().Sorted())
}
