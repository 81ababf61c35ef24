package report

import (
	"math"
	"sort"
	"strings"

	"github.com/ma6uchi/freee-api-export/internal/domain/project"
	"github.com/ma6uchi/freee-api-export/internal/domain/workload"
)

// Default internal/external marker tags, matching how projects are tagged
// in freee.
const (
	DefaultInternalMarker = "社内"
	DefaultExternalMarker = "社外"
)

// Aggregator joins workload entries to project metadata and reduces them to
// one row per (person, project, workload tag).
type Aggregator struct {
	internalMarker string
	externalMarker string
}

// NewAggregator creates an aggregator. Empty markers fall back to the
// defaults.
func NewAggregator(internalMarker, externalMarker string) *Aggregator {
	if internalMarker == "" {
		internalMarker = DefaultInternalMarker
	}
	if externalMarker == "" {
		externalMarker = DefaultExternalMarker
	}
	return &Aggregator{internalMarker: internalMarker, externalMarker: externalMarker}
}

// flatRow is one exploded (entry, tag) pair before reduction.
type flatRow struct {
	key              Key
	internalExternal string
	projectCode      string
	projectTagNames  string
	memo             string
	minutes          int
}

// Aggregate runs the two-stage transform: explode each entry into one row
// per workload tag (one row with an empty tag if the entry has none), then
// group by key, summing minutes and joining memos. Each exploded row carries
// the entry's full minutes; an entry with N tags contributes its minutes N
// times. That duplication matches the report's established semantics and is
// deliberate.
//
// Descriptive fields (internal/external, project code, project tags) are
// taken from the first row seen for a key. Later rows never override them,
// which can mask inconsistent upstream data for entries that resolve the
// same key through different projects' metadata. Known limitation.
func (a *Aggregator) Aggregate(entries []workload.Entry, idx project.Index) []Row {
	flat := a.explode(entries, idx)

	var order []Key
	groups := make(map[Key]*Row)
	memos := make(map[Key][]string)

	for _, fr := range flat {
		row, ok := groups[fr.key]
		if !ok {
			row = &Row{
				Key:              fr.key,
				InternalExternal: fr.internalExternal,
				ProjectCode:      fr.projectCode,
				ProjectTagNames:  fr.projectTagNames,
			}
			groups[fr.key] = row
			order = append(order, fr.key)
		}
		row.TotalMinutes += fr.minutes
		if fr.memo != "" {
			memos[fr.key] = append(memos[fr.key], fr.memo)
		}
	}

	rows := make([]Row, 0, len(order))
	for _, key := range order {
		row := groups[key]
		row.Memos = joinUniqueSorted(memos[key])
		row.TotalHours = roundHours(row.TotalMinutes)
		rows = append(rows, *row)
	}
	return rows
}

func (a *Aggregator) explode(entries []workload.Entry, idx project.Index) []flatRow {
	var flat []flatRow
	for _, entry := range entries {
		minutes := entry.Minutes
		if minutes < 0 {
			minutes = 0
		}

		var projectName, projectCode, internalExternal, projectTagNames string
		if proj, ok := idx.Get(entry.ProjectID); ok {
			projectName = proj.Name
			projectCode = proj.Code
			internalExternal = a.classify(proj.Tags)
			projectTagNames = joinProjectTags(proj.Tags)
		}

		base := flatRow{
			internalExternal: internalExternal,
			projectCode:      projectCode,
			projectTagNames:  projectTagNames,
			memo:             entry.Memo,
			minutes:          minutes,
		}

		if len(entry.Tags) == 0 {
			fr := base
			fr.key = Key{PersonName: entry.PersonName, ProjectName: projectName}
			flat = append(flat, fr)
			continue
		}
		for _, tag := range entry.Tags {
			fr := base
			fr.key = Key{
				PersonName:      entry.PersonName,
				ProjectName:     projectName,
				WorkloadTagName: tag.TagName,
			}
			flat = append(flat, fr)
		}
	}
	return flat
}

// classify scans project tags in insertion order and returns the first
// internal or external marker found, or empty when the project carries
// neither.
func (a *Aggregator) classify(tags []project.Tag) string {
	for _, t := range tags {
		switch t.TagName {
		case a.internalMarker:
			return a.internalMarker
		case a.externalMarker:
			return a.externalMarker
		}
	}
	return ""
}

func joinProjectTags(tags []project.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.TagName != "" {
			names = append(names, t.TagName)
		}
	}
	return joinUniqueSorted(names)
}

// joinUniqueSorted deduplicates, sorts lexicographically and comma-joins.
func joinUniqueSorted(values []string) string {
	if len(values) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	sort.Strings(unique)
	return strings.Join(unique, ", ")
}

// roundHours converts minutes to hours rounded half away from zero to two
// decimals: 125 -> 2.08, 90 -> 1.5, 1 -> 0.02.
func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
