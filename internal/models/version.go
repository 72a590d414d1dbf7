package models

import (
	"sort"
	"time"
)

// Version is one uploaded artifact attached to a project. Versions are
// appended and never edited.
type Version struct {
	URL         string    `json:"url" bson:"url"`
	Name        string    `json:"name" bson:"name"`
	ContentType string    `json:"content_type" bson:"content_type"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Artifact is what the upload collaborator hands over for a new version.
type Artifact struct {
	URL         string
	Name        string
	ContentType string
}

// VersionGroup is the history of one logical artifact, keyed by display name.
type VersionGroup struct {
	Name    string    `json:"name"`
	Current Version   `json:"current"`
	History []Version `json:"history"` // most recent first, Current excluded
}

// GroupVersions partitions versions by display name. Within a group the
// latest timestamp is current; equal timestamps resolve to the one appended
// last. Groups are ordered by their current version, most recent first.
func GroupVersions(versions []Version) []VersionGroup {
	if len(versions) == 0 {
		return []VersionGroup{}
	}

	type indexed struct {
		pos int
		v   Version
	}
	newer := func(a, b indexed) bool {
		if !a.v.CreatedAt.Equal(b.v.CreatedAt) {
			return a.v.CreatedAt.After(b.v.CreatedAt)
		}
		return a.pos > b.pos
	}

	var order []string
	byName := make(map[string][]indexed)
	for i, v := range versions {
		if _, seen := byName[v.Name]; !seen {
			order = append(order, v.Name)
		}
		byName[v.Name] = append(byName[v.Name], indexed{pos: i, v: v})
	}

	heads := make([]indexed, 0, len(order))
	groups := make(map[string]VersionGroup, len(order))
	for _, name := range order {
		entries := byName[name]
		sort.SliceStable(entries, func(i, j int) bool { return newer(entries[i], entries[j]) })

		history := make([]Version, 0, len(entries)-1)
		for _, e := range entries[1:] {
			history = append(history, e.v)
		}
		groups[name] = VersionGroup{Name: name, Current: entries[0].v, History: history}
		heads = append(heads, entries[0])
	}

	sort.SliceStable(heads, func(i, j int) bool { return newer(heads[i], heads[j]) })

	result := make([]VersionGroup, 0, len(heads))
	for _, h := range heads {
		result = append(result, groups[h.v.Name])
	}
	return result
}
