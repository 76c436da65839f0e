package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"unused-image-finder/internal/folder"
	"unused-image-finder/internal/matcher"
)

func TestSessionListingIsCopied(t *testing.T) {
	t.Parallel()

	s := NewSession()
	_, ok := s.Listing()
	require.False(t, ok)

	images := []string{"a.png", "b.png"}
	s.SetListing(folder.Listing{Path: "/x/Book/Graphics", ProjectFolder: "Book", Images: images})
	images[0] = "changed.png"

	l, ok := s.Listing()
	require.True(t, ok)
	require.Equal(t, []string{"a.png", "b.png"}, l.Images)

	l.Images[1] = "mutated.png"
	again, _ := s.Listing()
	require.Equal(t, "b.png", again.Images[1])
}

func TestSessionProjectFolderOverride(t *testing.T) {
	t.Parallel()

	s := NewSession()
	require.Empty(t, s.ProjectFolder())

	s.SetListing(folder.Listing{ProjectFolder: "Book"})
	require.Equal(t, "Book", s.ProjectFolder())

	s.SetProjectFolder("Graphics")
	require.Equal(t, "Graphics", s.ProjectFolder())

	s.SetProjectFolder("")
	require.Equal(t, "", s.ProjectFolder())

	s.SetListing(folder.Listing{ProjectFolder: "Other"})
	require.Equal(t, "Other", s.ProjectFolder())
}

func TestSessionResultLifecycle(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetListing(folder.Listing{Path: "/p", Images: []string{"a.png"}})
	_, ok := s.LastResult()
	require.False(t, ok)

	require.True(t, s.RecordResult(s.Generation(), matcher.Result{Unused: []string{"a.png"}, Total: 1}))
	r, ok := s.LastResult()
	require.True(t, ok)
	require.Equal(t, []string{"a.png"}, r.Unused)

	stats := s.Stats()
	require.Equal(t, 1, stats.Runs)
	require.Equal(t, 1, stats.Images)
	require.Equal(t, 1, stats.Unused)
	require.Equal(t, "/p", stats.Folder)

	s.SetListing(folder.Listing{Path: "/q"})
	_, ok = s.LastResult()
	require.False(t, ok)
}

func TestSessionDropsResultOfReplacedListing(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetListing(folder.Listing{Path: "/old", Images: []string{"a.png"}})
	gen := s.Generation()

	s.SetListing(folder.Listing{Path: "/old", Images: []string{"a.png", "b.png"}})
	require.NotEqual(t, gen, s.Generation())

	require.False(t, s.RecordResult(gen, matcher.Result{Unused: []string{"a.png"}, Total: 1}))
	_, ok := s.LastResult()
	require.False(t, ok)
	require.Zero(t, s.Stats().Runs)
}
