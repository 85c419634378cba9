package gen

import (
	"strings"
	"unicode"
)

// goName turns a model, property or nickname into an exported Go identifier.
// Every run of characters that can't appear in an identifier separates words,
// and each word starts with an upper case letter: `pet_status` -> `PetStatus`.
func goName(s string) string {
	var b strings.Builder

	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}

		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}

		b.WriteRune(r)
	}

	name := b.String()
	if name == "" {
		return ""
	}

	if unicode.IsDigit([]rune(name)[0]) {
		return "X" + name
	}

	return name
}

// snakeName turns a model or property name into a lower case SQL identifier:
// `PetOwner` -> `pet_owner`, `ownerID` -> `owner_id`.
func snakeName(s string) string {
	var b strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}

			continue
		}

		if unicode.IsUpper(r) && i > 0 && b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return strings.TrimSuffix(b.String(), "_")
}

func firstLower(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// oneLine collapses a description into a single comment line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
