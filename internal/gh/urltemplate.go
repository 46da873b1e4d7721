package gh

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches {/name} path segment placeholders in the
// RFC6570-style URL templates the provider returns for related resources.
var placeholderPattern = regexp.MustCompile(`\{/([a-zA-Z_]+)\}`)

// ErrMissingTemplateParam is wrapped with the placeholder name on failure
var ErrMissingTemplateParam = fmt.Errorf("missing URL template parameter")

// ExpandURLTemplate substitutes {/name} placeholders in a URL template
// with the provided values, producing a plain path segment per value.
//
// Example: ".../branches{/branch}" with {"branch": "main"} yields
// ".../branches/main". Every placeholder present in the template must
// have a value.
func ExpandURLTemplate(template string, params map[string]string) (string, error) {
	var missing string

	expanded := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := params[name]
		if !ok || value == "" {
			if missing == "" {
				missing = name
			}
			return match
		}
		return "/" + value
	})

	if missing != "" {
		return "", fmt.Errorf("%w: %s in %q", ErrMissingTemplateParam, missing, template)
	}

	if strings.Contains(expanded, "{") {
		// Leftover non-path placeholders ({?recursive} and friends) carry
		// optional query parameters and can be dropped whole.
		if idx := strings.Index(expanded, "{"); idx >= 0 {
			expanded = expanded[:idx]
		}
	}

	return expanded, nil
}
