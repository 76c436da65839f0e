package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindUnusedImagesScenarios(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		all     []string
		used    []string
		project string
		want    []string
	}{
		{
			name:    "one referenced one unused",
			all:     []string{"a.png", "b.png"},
			used:    []string{"Proj/a.png @ 120 dpi 100"},
			project: "Proj",
			want:    []string{"b.png"},
		},
		{
			name:    "no references",
			all:     []string{"a.png"},
			used:    nil,
			project: "Proj",
			want:    []string{"a.png"},
		},
		{
			name:    "no images",
			all:     nil,
			used:    []string{"Proj/a.png @ 100"},
			project: "Proj",
			want:    []string{},
		},
		{
			name:    "case insensitive",
			all:     []string{"Shot.PNG"},
			used:    []string{"proj/shot.png @ 100"},
			project: "Proj",
			want:    []string{},
		},
		{
			name:    "parentheses are literal",
			all:     []string{"x(1).eps"},
			used:    []string{"Proj/x(1).eps @ 100"},
			project: "Proj",
			want:    []string{},
		},
		{
			name:    "no pattern false positive",
			all:     []string{"x(1).eps"},
			used:    []string{"Proj/xA1Beps @ 100"},
			project: "Proj",
			want:    []string{"x(1).eps"},
		},
		{
			name:    "period is literal",
			all:     []string{"v1.2.eps"},
			used:    []string{"Proj/v1x2.eps @ 100"},
			project: "Proj",
			want:    []string{"v1.2.eps"},
		},
		{
			name:    "anchored at line start",
			all:     []string{"a.png"},
			used:    []string{"  Proj/a.png @ 100", "see Proj/a.png @ 100"},
			project: "Proj",
			want:    []string{"a.png"},
		},
		{
			name:    "trailing space is required",
			all:     []string{"a.png", "a.png.bak"},
			used:    []string{"Proj/a.png.bak @ 100", "Proj/a.png"},
			project: "Proj",
			want:    []string{"a.png"},
		},
		{
			name:    "empty project folder",
			all:     []string{"a.png", "b.png"},
			used:    []string{"/a.png @ 100"},
			project: "",
			want:    []string{"b.png"},
		},
		{
			name:    "blank and malformed lines never match",
			all:     []string{"a.png"},
			used:    []string{"", " ", "garbage", "Proj/"},
			project: "Proj",
			want:    []string{"a.png"},
		},
		{
			name:    "duplicates",
			all:     []string{"a.png", "a.png", "b.png"},
			used:    []string{"Proj/b.png @ 1", "Proj/b.png @ 2"},
			project: "Proj",
			want:    []string{"a.png", "a.png"},
		},
		{
			name:    "wrong project folder",
			all:     []string{"a.png"},
			used:    []string{"Other/a.png @ 100"},
			project: "Proj",
			want:    []string{"a.png"},
		},
		{
			name:    "non ascii fold",
			all:     []string{"Über.png"},
			used:    []string{"PROJ/üBER.PNG @ 72"},
			project: "proj",
			want:    []string{},
		},
		{
			name:    "invalid utf8 bytes compare literally",
			all:     []string{"caf\xe9.png", "caf\xe8.png"},
			used:    []string{"Proj/caf\xe8.png @ 100"},
			project: "Proj",
			want:    []string{"caf\xe9.png"},
		},
		{
			name:    "invalid utf8 with folded ascii around it",
			all:     []string{"Caf\xe9.PNG"},
			used:    []string{"proj/caf\xe9.png @ 100"},
			project: "Proj",
			want:    []string{},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FindUnusedImages(tc.all, tc.used, tc.project)
			require.NotNil(t, got)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFindUnusedImagesEmptyReferencesReturnsAll(t *testing.T) {
	t.Parallel()

	all := []string{"c.png", "A.png", "b.eps"}
	require.Equal(t, all, FindUnusedImages(all, []string{}, "Proj"))
}

func TestFindUnusedImagesDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	all := []string{"a.png", "b.png", "c.png"}
	used := []string{"Proj/B.png @ 100", "proj/a.png @ 1"}
	allCopy := append([]string(nil), all...)
	usedCopy := append([]string(nil), used...)

	got := FindUnusedImages(all, used, "Proj")
	require.Equal(t, []string{"c.png"}, got)
	require.Equal(t, allCopy, all)
	require.Equal(t, usedCopy, used)
}

// TestFindUnusedImagesProperties checks subset, completeness and order
// against a brute-force oracle over a small generated input space.
func TestFindUnusedImagesProperties(t *testing.T) {
	t.Parallel()

	images := []string{"a.png", "B.png", "c(1).eps", "d.tif", "a.PNG"}
	lines := []string{
		"Proj/a.png @ 100",
		"proj/b.png 72",
		"Proj/c(1).eps @",
		"Proj/c11eps @",
		"xProj/d.tif @",
		"Proj/d.tif",
		"",
	}

	for mask := 0; mask < 1<<len(lines); mask++ {
		var used []string
		for i, l := range lines {
			if mask&(1<<i) != 0 {
				used = append(used, l)
			}
		}

		got := FindUnusedImages(images, used, "Proj")

		var want []string
		for _, img := range images {
			prefix := strings.ToLower("Proj/" + img + " ")
			referenced := false
			for _, l := range used {
				if strings.HasPrefix(strings.ToLower(l), prefix) {
					referenced = true
					break
				}
			}
			if !referenced {
				want = append(want, img)
			}
		}
		if want == nil {
			want = []string{}
		}
		require.Equal(t, want, got, "mask %b", mask)
	}
}

func TestMatchCounts(t *testing.T) {
	t.Parallel()

	res := Match([]string{"a.png", "b.png", "c.png"}, []string{"Proj/a.png @ 100"}, "Proj")
	require.Equal(t, []string{"b.png", "c.png"}, res.Unused)
	require.Equal(t, 3, res.Total)
	require.Equal(t, 1, res.Referenced)
	require.False(t, res.Empty())

	res = Match(nil, nil, "Proj")
	require.True(t, res.Empty())
	require.Zero(t, res.Total)
}

func TestReferencePrefix(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Graphics/shot.png ", ReferencePrefix("Graphics", "shot.png"))
	require.Equal(t, "/shot.png ", ReferencePrefix("", "shot.png"))
}

func TestHasPrefixFold(t *testing.T) {
	t.Parallel()

	require.True(t, hasPrefixFold("ABC def", "abc "))
	require.True(t, hasPrefixFold("anything", ""))
	require.False(t, hasPrefixFold("ab", "abc"))
	require.False(t, hasPrefixFold("xabc", "abc"))
	require.True(t, hasPrefixFold("Kelvin", "kelvin"))
	require.True(t, hasPrefixFold("caf\xe9 x", "CAF\xe9 "))
	require.False(t, hasPrefixFold("caf\xe8 x", "caf\xe9 "))
	require.False(t, hasPrefixFold("caf\uFFFD x", "caf\xe9 "))
	require.False(t, hasPrefixFold("caf\xe9 x", "caf\uFFFD "))
}
