package species

import "testing"

func TestResolve(t *testing.T) {
	r := NewRegistry(nil)

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"canonical code", "mouse", "mouse", true},
		{"uppercase code", "MOUSE", "mouse", true},
		{"scientific name", "Mus musculus", "mouse", true},
		{"scientific alias", "m_musculus", "mouse", true},
		{"common name with space", "Guinea Pig", "guinea_pig", true},
		{"hyphenated", "naked mole-rat", "nmr", true},
		{"underscored alias", "naked_mole_rat", "nmr", true},
		{"scientific name nmr", "Heterocephalus glaber", "nmr", true},
		{"hamster alias", "syrian_hamster", "hamster", true},
		{"hamster common name", "Syrian Hamster", "hamster", true},
		{"abbreviated rat", "r_norvegicus", "rat", true},
		{"unknown", "zebrafish", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveRoundTrip(t *testing.T) {
	r := NewRegistry(nil)

	// Both stored names of every entry must resolve back to its code.
	for _, code := range r.List() {
		info, ok := r.Lookup(code)
		if !ok {
			t.Fatalf("Lookup(%q) not found for listed code", code)
		}

		for _, name := range []string{info.ScientificName, info.CommonName} {
			got, ok := r.Resolve(name)
			if !ok {
				t.Errorf("Resolve(%q) not found, want %q", name, code)
				continue
			}
			if got != code {
				t.Errorf("Resolve(%q) = %q, want %q", name, got, code)
			}
		}
	}
}
