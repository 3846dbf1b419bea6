package matching

import "regexp"

// Rewriter substitutes a matched path through a replacement template.
// Capture references ($1, ${1}, ...) resolve against the route's own
// pattern, not against the path being dispatched.
type Rewriter struct {
	re       *regexp.Regexp
	template string
}

// NewRewriter builds a rewriter over the pattern's capture groups.
func NewRewriter(p *Pattern, template string) *Rewriter {
	return &Rewriter{
		re:       p.Regexp(),
		template: template,
	}
}

// Rewrite applies the replacement template to path.
func (r *Rewriter) Rewrite(path string) string {
	return r.re.ReplaceAllString(path, r.template)
}
