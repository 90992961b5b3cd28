package activity

import "strings"

// defaultSkipPaths excludes internal tooling and non-business traffic from the
// audit trail: debug panels, job dashboards, reactive-component callbacks, the
// "who am I" identity probe, and asset or stored-file serving.
var defaultSkipPaths = []string{
	"_debugbar",
	"telescope",
	"horizon",
	"livewire",
	"/api/user",
	"/build/",
	"/storage/",
}

// SkipFilter decides whether a path is exempt from activity recording.
// Matching is case-sensitive substring containment.
type SkipFilter struct {
	substrings []string
}

// NewSkipFilter builds a filter for the given substrings. An empty list
// selects the default set.
func NewSkipFilter(substrings []string) *SkipFilter {
	if len(substrings) == 0 {
		substrings = defaultSkipPaths
	}
	return &SkipFilter{substrings: append([]string(nil), substrings...)}
}

// ShouldSkip reports whether the path matches any exclusion substring.
func (f *SkipFilter) ShouldSkip(path string) bool {
	for _, s := range f.substrings {
		if strings.Contains(path, s) {
			return true
		}
	}
	return false
}
