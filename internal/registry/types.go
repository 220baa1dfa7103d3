package registry

import "sort"

// ComponentRecord describes one installable component bundle as published in
// the catalog manifest. Records are immutable once loaded.
type ComponentRecord struct {
	Name                 string                `yaml:"name" json:"name"`
	Description          string                `yaml:"description,omitempty" json:"description,omitempty"`
	Category             string                `yaml:"category,omitempty" json:"category,omitempty"`
	Preview              *ComponentPreview     `yaml:"preview,omitempty" json:"preview,omitempty"`
	Files                []ComponentFileRecord `yaml:"files" json:"files"`
	Dependencies         map[string]string     `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DevDependencies      map[string]string     `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
	InternalDependencies []string              `yaml:"internalDependencies,omitempty" json:"internalDependencies,omitempty"`
}

// ComponentFileRecord is one file within a component bundle. Target selects
// the destination alias directory; Kind "entry" marks a public entry point.
type ComponentFileRecord struct {
	Path        string   `yaml:"path" json:"path"`
	Target      string   `yaml:"target,omitempty" json:"target,omitempty"`
	Kind        string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	TypeExports []string `yaml:"typeExports,omitempty" json:"typeExports,omitempty"`
}

// ComponentPreview carries optional media shown by registry browsers.
type ComponentPreview struct {
	Video  string `yaml:"video,omitempty" json:"video,omitempty"`
	Poster string `yaml:"poster,omitempty" json:"poster,omitempty"`
}

// Registry is the full catalog manifest.
type Registry struct {
	Name                string                     `yaml:"name" json:"name"`
	Version             string                     `yaml:"version" json:"version"`
	Description         string                     `yaml:"description,omitempty" json:"description,omitempty"`
	BaseDependencies    map[string]string          `yaml:"baseDependencies,omitempty" json:"baseDependencies,omitempty"`
	BaseDevDependencies map[string]string          `yaml:"baseDevDependencies,omitempty" json:"baseDevDependencies,omitempty"`
	Components          map[string]ComponentRecord `yaml:"components" json:"components"`
}

// Component pairs a catalog slug with its record for ordered listings.
type Component struct {
	Slug   string
	Record ComponentRecord
}

// Summary is the catalog metadata shown by the list command.
type Summary struct {
	Name           string
	Version        string
	Description    string
	ComponentCount int
}

// BaseDependencies are packages installed regardless of which components the
// user requests.
type BaseDependencies struct {
	Dependencies    map[string]string
	DevDependencies map[string]string
}

func sortComponents(components []Component) {
	sort.Slice(components, func(i, j int) bool {
		return components[i].Slug < components[j].Slug
	})
}
