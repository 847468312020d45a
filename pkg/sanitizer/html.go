package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

// EmailPolicy returns a fresh copy of the policy used by EmailHTML, for
// callers that want to extend it.
//
// It starts from bluemonday's UGC policy and additionally keeps document
// structure, <style> blocks and the presentational attributes HTML email
// clients still rely on. Scripts, event handlers and javascript: URLs are
// removed.
func EmailPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("html", "head", "body", "center", "font", "span", "div")

	// Only whitelisted elements are kept, and script is not one of them.
	p.AllowUnsafe(true)
	p.AllowElements("style")

	p.AllowAttrs("style", "class", "id", "align", "valign", "width", "height",
		"bgcolor", "border", "cellpadding", "cellspacing", "role").Globally()
	p.AllowAttrs("type", "media").OnElements("style")
	p.AllowAttrs("target").OnElements("a")
	return p
}

// EmailHTML sanitizes a rendered HTML mail body. Its signature matches
// mailer.HTMLProcessor so it can be chained after CSS inlining.
func EmailHTML(s string) (string, error) {
	initOnce.Do(func() {
		emailPolicy = EmailPolicy()
	})
	return emailPolicy.Sanitize(s), nil
}

// WithPolicy adapts a custom bluemonday policy to the mailer.HTMLProcessor
// signature. A nil policy returns input unchanged.
func WithPolicy(policy *bluemonday.Policy) func(string) (string, error) {
	return func(s string) (string, error) {
		if policy == nil {
			return s, nil
		}
		return policy.Sanitize(s), nil
	}
}
