package matching

import "strings"

// MethodFilter decides whether a route accepts a request method. The
// zero value matches any method; an explicit set matches only the
// methods it was built from.
type MethodFilter struct {
	// nil means match any method.
	set map[string]struct{}
}

// MatchAny returns a filter that accepts every method.
func MatchAny() MethodFilter {
	return MethodFilter{}
}

// MatchSet returns a filter that accepts exactly the given methods.
// Methods are normalized to uppercase.
func MatchSet(methods ...string) MethodFilter {
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[strings.ToUpper(m)] = struct{}{}
	}
	return MethodFilter{set: set}
}

// Matches reports whether the filter accepts the given method.
func (f MethodFilter) Matches(method string) bool {
	if f.set == nil {
		return true
	}
	_, ok := f.set[strings.ToUpper(method)]
	return ok
}
