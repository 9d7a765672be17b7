// Package mirror resolves the download locations of Maven binary archives
package mirror

import (
	"strings"

	"github.com/mvmtool/mvm/src/internal/constants"
)

// Source is one download location for Maven archives
type Source struct {
	BaseURL string
	// VersionSubpath places archives under <version>/binaries/ below BaseURL
	VersionSubpath bool
}

// URL returns the archive URL for a version on this source
func (s Source) URL(version string) string {
	base := s.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if s.VersionSubpath {
		base += version + "/binaries/"
	}
	return base + constants.ArchiveName(version)
}

// DefaultSources are the Apache archive locations, in the order they are tried
var DefaultSources = []Source{
	{BaseURL: "https://archive.apache.org/dist/maven/maven-4/", VersionSubpath: true},
	{BaseURL: "https://archive.apache.org/dist/maven/maven-3/", VersionSubpath: true},
	{BaseURL: "https://archive.apache.org/dist/maven/binaries/", VersionSubpath: false},
}

// Resolver produces candidate archive URLs from an ordered source list
type Resolver struct {
	sources []Source
}

// NewResolver creates a resolver over sources; an empty list means DefaultSources
func NewResolver(sources []Source) *Resolver {
	if len(sources) == 0 {
		sources = DefaultSources
	}
	list := make([]Source, len(sources))
	copy(list, sources)
	return &Resolver{sources: list}
}

// CandidateURLs returns one archive URL per source, in priority order
func (r *Resolver) CandidateURLs(version string) []string {
	urls := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		urls = append(urls, s.URL(version))
	}
	return urls
}
