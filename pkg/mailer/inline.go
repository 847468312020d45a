package mailer

import (
	"fmt"

	"github.com/aymerick/douceur/inliner"
)

// HTMLProcessor post-processes a rendered, non-empty HTML body.
type HTMLProcessor func(html string) (string, error)

// InlineCSS moves the rules of <style> blocks into style attributes of the
// elements they match. Rules that cannot be inlined (pseudo-classes, media
// queries) stay in a <style> block.
func InlineCSS(html string) (string, error) {
	out, err := inliner.Inline(html)
	if err != nil {
		return "", fmt.Errorf("%w: inline css: %v", ErrRenderFailed, err)
	}
	return out, nil
}
