package changelog

import (
	"testing"

	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_CreatesUnreleasedAtTop(t *testing.T) {
	t.Parallel()

	c := &Changelog{
		Project:  "p",
		Versions: []Version{{Version: "0.1.0", Date: "2026-01-01", Changes: Changes{Added: []string{"Initial"}}}},
	}

	added := c.Merge(releasenotes.CategoryMap{
		releasenotes.Fixed: {"Bug fix (#2)"},
		releasenotes.Added: {"Feature (#2)"},
	})

	assert.Equal(t, 2, added)
	require.Len(t, c.Versions, 2)
	assert.True(t, c.Versions[0].IsUnreleased())
	assert.Equal(t, []string{"Feature (#2)"}, c.Versions[0].Changes.Added)
	assert.Equal(t, []string{"Bug fix (#2)"}, c.Versions[0].Changes.Fixed)
	assert.NoError(t, Validate(c))
}

func TestMerge_AppendsAndSkipsDuplicates(t *testing.T) {
	t.Parallel()

	c := &Changelog{
		Project:  "p",
		Versions: []Version{{Version: Unreleased, Changes: Changes{Fixed: []string{"Existing"}}}},
	}

	added := c.Merge(releasenotes.CategoryMap{
		releasenotes.Fixed: {"Existing", "New", "New", ""},
	})

	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"Existing", "New"}, c.Versions[0].Changes.Fixed)
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	c := &Changelog{Project: "p"}
	entries := releasenotes.CategoryMap{releasenotes.Security: {"Patched CVE"}}

	assert.Equal(t, 1, c.Merge(entries))
	assert.Equal(t, 0, c.Merge(entries))
	require.Len(t, c.Versions, 1)
	assert.Equal(t, 1, c.Versions[0].Changes.Count())
}

func TestMerge_NothingToAdd(t *testing.T) {
	t.Parallel()

	c := &Changelog{Project: "p"}
	assert.Equal(t, 0, c.Merge(releasenotes.CategoryMap{}))
	assert.Empty(t, c.Versions, "no empty unreleased version is created")
}

func TestRelease(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		changelog   *Changelog
		version     string
		date        string
		errContains string
	}{
		"releases unreleased": {
			changelog: sampleChangelog(),
			version:   "v0.3.0",
			date:      "2026-03-01",
		},
		"no unreleased": {
			changelog:   &Changelog{Project: "p", Versions: []Version{{Version: "1.0.0", Date: "2026-01-01", Changes: Changes{Added: []string{"a"}}}}},
			version:     "1.1.0",
			date:        "2026-03-01",
			errContains: "no unreleased changes",
		},
		"existing version": {
			changelog:   sampleChangelog(),
			version:     "0.2.0",
			date:        "2026-03-01",
			errContains: "already exists",
		},
		"invalid semver": {
			changelog:   sampleChangelog(),
			version:     "next",
			date:        "2026-03-01",
			errContains: "invalid semver format",
		},
		"invalid date": {
			changelog:   sampleChangelog(),
			version:     "0.3.0",
			date:        "March 1",
			errContains: "invalid date format",
		},
		"unreleased as version": {
			changelog:   sampleChangelog(),
			version:     "Unreleased",
			date:        "2026-03-01",
			errContains: "cannot release as 'unreleased'",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := tt.changelog.Release(tt.version, tt.date)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "0.3.0", tt.changelog.Versions[0].Version)
			assert.Equal(t, "2026-03-01", tt.changelog.Versions[0].Date)
			assert.Nil(t, tt.changelog.GetUnreleased())
			assert.NoError(t, Validate(tt.changelog))
		})
	}
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	c := sampleChangelog()

	v, err := c.GetVersion("v0.2.0")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", v.Date)

	v, err = c.GetVersion("unreleased")
	require.NoError(t, err)
	assert.True(t, v.IsUnreleased())

	_, err = c.GetVersion("9.9.9")
	require.Error(t, err)
	var notFound *VersionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"unreleased", "0.2.0", "0.1.0"}, notFound.AvailableVersions)
	assert.Contains(t, err.Error(), `version "9.9.9" not found`)
}

func TestChanges_Categories(t *testing.T) {
	t.Parallel()

	ch := Changes{Added: []string{"a"}, Security: []string{"s1", "s2"}}
	m := ch.Categories()

	assert.Len(t, m, 2)
	assert.Equal(t, []string{"s1", "s2"}, m[releasenotes.Security])
	assert.Equal(t, 3, ch.Count())
	assert.False(t, ch.IsEmpty())
	assert.Nil(t, ch.Get(releasenotes.Category("Other")))
}

func TestNewChanges(t *testing.T) {
	t.Parallel()

	m := releasenotes.CategoryMap{
		releasenotes.Removed:              {"Old flag"},
		releasenotes.Category("Unknown"): {"ignored"},
	}
	ch := NewChanges(m)

	assert.Equal(t, []string{"Old flag"}, ch.Removed)
	assert.Equal(t, 1, ch.Count())

	m[releasenotes.Removed][0] = "mutated"
	assert.Equal(t, "Old flag", ch.Removed[0], "entries are copied")
}
