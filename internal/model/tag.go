package model

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// Tag mirrors the `tags` table. Names are stored lowercased and are unique
// case-insensitively. Color is a hex value, either picked by the client or
// assigned from the fixed palette.
type Tag struct {
	ID        uint64    // tags.id
	Name      string    // tags.name (lowercased)
	Color     string    // tags.color (#RGB or #RRGGBB)
	IsActive  bool      // tags.is_active
	CreatedAt time.Time // tags.created_at
	UpdatedAt time.Time // tags.updated_at
}

// TagPalette is the fixed set of colors assigned to tags created without an
// explicit color.
var TagPalette = [12]string{
	"#EF4444", // red
	"#F97316", // orange
	"#F59E0B", // amber
	"#84CC16", // lime
	"#22C55E", // green
	"#14B8A6", // teal
	"#06B6D4", // cyan
	"#3B82F6", // blue
	"#6366F1", // indigo
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#64748B", // slate
}

// colorPattern accepts 3- or 6-digit hex colors with a leading '#'.
var colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ValidColor reports whether s is a well-formed hex color.
func ValidColor(s string) bool { return colorPattern.MatchString(s) }

// PickTagColor returns one palette color using the given source. The source
// is injected so tests can seed it; production passes a time-seeded source.
func PickTagColor(r *rand.Rand) string {
	return TagPalette[r.Intn(len(TagPalette))]
}

// NormalizeTagName lowercases and trims a tag name for storage and for the
// case-insensitive uniqueness check.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
