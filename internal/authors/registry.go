// Package authors resolves author display names to profiles from a YAML registry.
package authors

import (
	_ "embed"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thebtf/promptverse/pkg/models"
)

//go:embed authors.yaml
var defaultRegistry []byte

// Fallback profile values for names without a registry entry.
const (
	FallbackBio         = "A creative explorer contributing to the PromptVerse community."
	FallbackAvatarColor = "from-gray-600 to-gray-800"
	avatarURLBase       = "https://api.dicebear.com/9.x/shapes/svg?seed="
)

// Config is the top-level YAML structure.
type Config struct {
	Authors []models.AuthorProfile `yaml:"authors"`
}

// Registry holds loaded profiles, keyed by name. It has no link to the
// prompt store: any display name is a valid lookup.
type Registry struct {
	byName map[string]*models.AuthorProfile
	order  []string // preserves definition order
	now    func() time.Time
}

// Default returns the registry embedded in the binary.
func Default() *Registry {
	r, err := Parse(defaultRegistry)
	if err != nil {
		panic("authors: embedded registry is invalid: " + err.Error())
	}
	return r
}

// Load reads the YAML file at path and returns a Registry.
// If the file does not exist, Load returns the embedded registry.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse builds a Registry from YAML. Later entries replace earlier ones
// with the same name.
func Parse(data []byte) (*Registry, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	r := &Registry{
		byName: make(map[string]*models.AuthorProfile, len(cfg.Authors)),
		now:    time.Now,
	}
	for i := range cfg.Authors {
		a := &cfg.Authors[i]
		a.Name = strings.TrimSpace(a.Name)
		if a.Name == "" {
			continue
		}
		if _, dup := r.byName[a.Name]; !dup {
			r.order = append(r.order, a.Name)
		}
		r.byName[a.Name] = a
	}
	return r, nil
}

// Get returns a profile by name. Returns (nil, false) if not found.
func (r *Registry) Get(name string) (*models.AuthorProfile, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Lookup returns the registered profile for name or a generic fallback.
func (r *Registry) Lookup(name string) models.AuthorProfile {
	if a, ok := r.byName[name]; ok {
		return *a
	}
	return models.AuthorProfile{
		Name:        name,
		Bio:         FallbackBio,
		JoinedDate:  r.now().UTC().Format("2006-01-02"),
		AvatarColor: FallbackAvatarColor,
		AvatarURL:   avatarURLBase + url.QueryEscape(name),
	}
}

// All returns all profiles in definition order.
func (r *Registry) All() []*models.AuthorProfile {
	result := make([]*models.AuthorProfile, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.byName[name])
	}
	return result
}

// Names returns a sorted list of registered names.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}
