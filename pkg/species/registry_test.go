package species

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

func TestLookup(t *testing.T) {
	r := NewRegistry(nil)

	info, ok := r.Lookup("mouse")
	if !ok {
		t.Fatal("Lookup(mouse) not found, want found")
	}
	if info.CommonName != "Mouse" {
		t.Errorf("CommonName = %q, want %q", info.CommonName, "Mouse")
	}
	if info.ScientificName != "Mus musculus" {
		t.Errorf("ScientificName = %q, want %q", info.ScientificName, "Mus musculus")
	}
	if info.MotherID != "M-musculus" {
		t.Errorf("MotherID = %q, want %q", info.MotherID, "M-musculus")
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	r := NewRegistry(nil)

	for _, code := range []string{"MOUSE", "Mouse", "mOuSe"} {
		if _, ok := r.Lookup(code); !ok {
			t.Errorf("Lookup(%q) not found, want found", code)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	r := NewRegistry(nil)

	if _, ok := r.Lookup("gerbil"); ok {
		t.Error("Lookup(gerbil) found, want not found")
	}
}

func TestList(t *testing.T) {
	r := NewRegistry(nil)

	got := r.List()
	want := []string{"mouse", "rat", "nmr", "guinea_pig", "hamster"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	r := NewRegistry(nil)

	tests := []struct {
		code string
		want bool
	}{
		{"mouse", true},
		{"RAT", true},
		{"nmr", true},
		{"zebrafish", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := r.Validate(tt.code); got != tt.want {
			t.Errorf("Validate(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestFollicleTypes(t *testing.T) {
	r := NewRegistry(nil)

	got := r.FollicleTypes("rat")
	want := []string{"primordial", "primary", "secondary", "antral", "preovulatory"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FollicleTypes(rat) = %v, want %v", got, want)
	}

	if got := r.FollicleTypes("zebrafish"); len(got) != 0 {
		t.Errorf("FollicleTypes(zebrafish) = %v, want empty", got)
	}
}

func TestTileSize(t *testing.T) {
	r := NewRegistry(nil)

	tests := []struct {
		code string
		want int
	}{
		{"mouse", 256},
		{"rat", 512},
		{"guinea_pig", 512},
		{"zebrafish", 256}, // unknown falls back to default
	}

	for _, tt := range tests {
		if got := r.TileSize(tt.code); got != tt.want {
			t.Errorf("TileSize(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestLabelmap(t *testing.T) {
	r := NewRegistry(nil)

	got := r.Labelmap("mouse")
	if len(got) != 5 {
		t.Errorf("Labelmap(mouse) has %d entries, want 5", len(got))
	}
	if got[0] != models.LabelBackground {
		t.Errorf("Labelmap(mouse)[0] = %q, want %q", got[0], models.LabelBackground)
	}
	if got[1] != "primordial" {
		t.Errorf("Labelmap(mouse)[1] = %q, want %q", got[1], "primordial")
	}
	if got[4] != "antral" {
		t.Errorf("Labelmap(mouse)[4] = %q, want %q", got[4], "antral")
	}
}

func TestLabelmapSizeTracksFollicleTypes(t *testing.T) {
	r := NewRegistry(nil)

	for _, code := range r.List() {
		labelmap := r.Labelmap(code)
		types := r.FollicleTypes(code)
		if len(labelmap) != len(types)+1 {
			t.Errorf("Labelmap(%s) has %d entries, want %d", code, len(labelmap), len(types)+1)
		}
		if labelmap[0] != models.LabelBackground {
			t.Errorf("Labelmap(%s)[0] = %q, want %q", code, labelmap[0], models.LabelBackground)
		}
	}
}

func TestLabelmapUnknown(t *testing.T) {
	r := NewRegistry(nil)

	if got := r.Labelmap("zebrafish"); len(got) != 0 {
		t.Errorf("Labelmap(zebrafish) = %v, want empty", got)
	}
}

func TestRegister(t *testing.T) {
	r := NewRegistry(nil)

	custom := models.SpeciesInfo{
		CommonName:           "Deer Mouse",
		ScientificName:       "Peromyscus maniculatus",
		SpeciesCode:          "deer_mouse",
		TypicalFollicleTypes: []string{"primordial", "primary"},
		RecommendedTileSize:  256,
	}
	r.Register("Deer_Mouse", custom)

	info, ok := r.Lookup("deer_mouse")
	if !ok {
		t.Fatal("Lookup(deer_mouse) not found after Register")
	}
	if info.CommonName != "Deer Mouse" {
		t.Errorf("CommonName = %q, want %q", info.CommonName, "Deer Mouse")
	}
	if got := len(r.List()); got != 6 {
		t.Errorf("List() has %d codes after Register, want 6", got)
	}
}

func TestRegisterOverwrite(t *testing.T) {
	r := NewRegistry(nil)

	replacement := models.SpeciesInfo{
		CommonName:          "Lab Mouse",
		SpeciesCode:         "mouse",
		RecommendedTileSize: 128,
	}
	r.Register("mouse", replacement)

	if got := len(r.List()); got != 5 {
		t.Errorf("List() has %d codes after overwrite, want 5", got)
	}
	info, _ := r.Lookup("mouse")
	if info.CommonName != "Lab Mouse" {
		t.Errorf("CommonName = %q after overwrite, want %q", info.CommonName, "Lab Mouse")
	}
}

func TestCompare(t *testing.T) {
	r := NewRegistry(nil)

	cmp := r.Compare([]string{"mouse", "rat", "zebrafish"})
	if cmp.Len() != 2 {
		t.Fatalf("Compare() resolved %d species, want 2", cmp.Len())
	}
	if !reflect.DeepEqual(cmp.Species, []string{"Mouse", "Rat"}) {
		t.Errorf("Species = %v, want [Mouse Rat]", cmp.Species)
	}
	if !reflect.DeepEqual(cmp.FollicleTypes, []int{4, 5}) {
		t.Errorf("FollicleTypes = %v, want [4 5]", cmp.FollicleTypes)
	}
	if !reflect.DeepEqual(cmp.TileSize, []int{256, 512}) {
		t.Errorf("TileSize = %v, want [256 512]", cmp.TileSize)
	}
}

func TestEmptyRegistry(t *testing.T) {
	r := NewEmptyRegistry(nil)

	if got := len(r.List()); got != 0 {
		t.Errorf("List() has %d codes, want 0", got)
	}
	if _, ok := r.Lookup("mouse"); ok {
		t.Error("Lookup(mouse) found in empty registry, want not found")
	}
}
