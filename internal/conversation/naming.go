package conversation

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// DefaultName is used when a prompt yields no usable title.
	DefaultName = "New Chat"

	maxNameLength = 40
	ellipsis      = "..."
)

// SynthesizeName derives a conversation name from the first sentence of a
// prompt, truncated to 40 characters.
func SynthesizeName(prompt string) string {
	name := prompt
	if i := strings.IndexAny(name, ".!?"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}

	if uniseg.GraphemeClusterCount(name) <= maxNameLength {
		return name
	}

	keep := maxNameLength - len(ellipsis)
	var sb strings.Builder
	g := uniseg.NewGraphemes(name)
	for n := 0; n < keep && g.Next(); n++ {
		sb.WriteString(g.Str())
	}
	return sb.String() + ellipsis
}
