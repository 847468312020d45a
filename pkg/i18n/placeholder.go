package i18n

import (
	"fmt"
	"strings"
)

// ReplacePlaceholders substitutes {{name}} markers in message with values
// from placeholders. Unknown markers are left as they are.
func ReplacePlaceholders(message string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(message, "{{") {
		return message
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(message)
}
