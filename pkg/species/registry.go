// Package species maintains the registry of supported rodent species: code
// lookup, name resolution, labelmap generation, and cross-species comparison.
package species

import (
	"log/slog"
	"strings"

	"github.com/dtnitsch/wsi-tile-labeler/models"
)

// defaultTileSize is the recommended tile edge when a species is unknown.
const defaultTileSize = 256

// Registry maps species codes to their records. Codes are stored lowercase
// and every lookup folds case. Construct with NewRegistry or NewEmptyRegistry;
// the zero value has no entries. Lookups may run concurrently, but Register
// mutates the maps without locking and needs external synchronization.
type Registry struct {
	logger  *slog.Logger
	entries map[string]models.SpeciesInfo
	order   []string
	aliases map[string]string
}

// NewRegistry returns a registry preloaded with the built-in rodent species
// and their name aliases. A nil logger disables lookup warnings.
func NewRegistry(logger *slog.Logger) *Registry {
	r := NewEmptyRegistry(logger)
	for _, info := range builtinSpecies() {
		r.entries[info.SpeciesCode] = info
		r.order = append(r.order, info.SpeciesCode)
	}
	for alias, code := range builtinAliases {
		r.aliases[alias] = code
	}
	return r
}

// NewEmptyRegistry returns a registry with no species or aliases, for callers
// that register their own set.
func NewEmptyRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:  logger,
		entries: make(map[string]models.SpeciesInfo),
		aliases: make(map[string]string),
	}
}

// Lookup returns the record for a species code, matched case-insensitively.
// A miss logs a warning listing the available codes.
func (r *Registry) Lookup(code string) (models.SpeciesInfo, bool) {
	info, ok := r.entries[strings.ToLower(code)]
	if !ok {
		r.logWarn("Species not found in registry", "species", code)
		r.logInfo("Available species", "codes", strings.Join(r.order, ", "))
	}
	return info, ok
}

// List returns all species codes in registration order.
func (r *Registry) List() []string {
	return append([]string(nil), r.order...)
}

// Validate reports whether a species code is registered.
func (r *Registry) Validate(code string) bool {
	_, ok := r.entries[strings.ToLower(code)]
	return ok
}

// FollicleTypes returns the typical follicle types for a species, or an empty
// slice when the species is unknown.
func (r *Registry) FollicleTypes(code string) []string {
	info, ok := r.Lookup(code)
	if !ok {
		return []string{}
	}
	return append([]string(nil), info.TypicalFollicleTypes...)
}

// TileSize returns the recommended tile edge in pixels for a species, falling
// back to the default for unknown codes.
func (r *Registry) TileSize(code string) int {
	info, ok := r.Lookup(code)
	if !ok {
		return defaultTileSize
	}
	return info.RecommendedTileSize
}

// Labelmap builds the class-ID-to-label mapping for a species: index 0 is
// always background, follicle types follow in registry order from 1. Unknown
// species yield an empty map.
func (r *Registry) Labelmap(code string) map[int]string {
	info, ok := r.Lookup(code)
	if !ok {
		return map[int]string{}
	}
	labelmap := map[int]string{0: models.LabelBackground}
	for i, follicleType := range info.TypicalFollicleTypes {
		labelmap[i+1] = follicleType
	}
	return labelmap
}

// Register inserts a custom species under the lowercased code so later
// lookups resolve it. Overwriting an existing entry logs a warning.
func (r *Registry) Register(code string, info models.SpeciesInfo) {
	key := strings.ToLower(code)
	if _, exists := r.entries[key]; exists {
		r.logWarn("Overwriting existing species", "species", key)
	} else {
		r.order = append(r.order, key)
	}
	r.entries[key] = info
	r.logInfo("Registered custom species", "species", key)
}

func (r *Registry) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *Registry) logInfo(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}
