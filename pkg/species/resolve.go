package species

import "strings"

// normalizeName folds a species name into lookup form: lowercase with spaces
// and hyphens collapsed to underscores.
func normalizeName(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}

// Resolve maps a species name in any accepted form to its canonical code.
// It tries, in order: the code itself, the alias table, scientific names,
// and common names. The second return is false when nothing matched.
func (r *Registry) Resolve(name string) (string, bool) {
	normalized := normalizeName(name)

	if _, ok := r.entries[normalized]; ok {
		return normalized, true
	}
	if code, ok := r.aliases[normalized]; ok {
		return code, true
	}
	for _, code := range r.order {
		info := r.entries[code]
		if normalizeName(info.ScientificName) == normalized {
			return code, true
		}
		if normalizeName(info.CommonName) == normalized {
			return code, true
		}
	}
	return "", false
}
