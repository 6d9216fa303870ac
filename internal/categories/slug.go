package categories

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// translit maps Cyrillic letters to their Latin spellings. The table is
// fixed: slug derivation must be deterministic across submissions.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Slugify derives a URL-safe slug from a name: lower-case, transliterate
// Cyrillic, collapse runs of anything outside [a-z0-9] into single hyphens,
// trim edge hyphens. An empty result falls back to "category".
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if mapped, ok := translit[r]; ok {
			b.WriteString(mapped)
			continue
		}
		b.WriteRune(r)
	}

	var out strings.Builder
	hyphen := false
	for _, r := range b.String() {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && out.Len() > 0 {
			out.WriteByte('-')
			hyphen = true
		}
	}
	slug := strings.Trim(out.String(), "-")
	if slug == "" {
		return "category"
	}
	return slug
}

// ExistsFunc reports whether a slug is already taken by a category other
// than selfID (uuid.Nil when creating).
type ExistsFunc func(slug string, selfID uuid.UUID) (bool, error)

// UniqueSlug resolves collisions by suffixing -1, -2, ... until the slug is
// free.
func UniqueSlug(base string, selfID uuid.UUID, exists ExistsFunc) (string, error) {
	slug := base
	for n := 1; ; n++ {
		taken, err := exists(slug, selfID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
