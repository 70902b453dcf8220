// Package dataset loads the illustrative industry profiles and IPCC sector
// references. The data is read once at startup and never changes afterwards;
// every accessor hands out copies.
package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pathways.rf2lab.org/internal/models"
)

//go:embed profiles.yaml
var embeddedProfiles []byte

// EmbeddedSource is the Source of a dataset loaded from the compiled-in file.
const EmbeddedSource = "embedded"

// ErrInvalidDataset is wrapped by every load or validation failure.
var ErrInvalidDataset = errors.New("invalid dataset")

type document struct {
	Industries []models.IndustryProfile `yaml:"industries"`
	Sectors    []models.SectorReference `yaml:"sectors"`
}

// Dataset is the immutable table of industry profiles and sector references.
type Dataset struct {
	source     string
	industries []models.IndustryProfile
	sectors    []models.SectorReference
	index      map[string]int
	sectorIdx  map[string]int
}

// LoadEmbedded parses the dataset compiled into the binary.
func LoadEmbedded() (*Dataset, error) {
	return Parse(embeddedProfiles, EmbeddedSource)
}

// LoadFile parses a dataset override from disk.
func LoadFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrInvalidDataset, path, err)
	}
	return Parse(raw, path)
}

// Load reads the file at path, or the embedded dataset when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return LoadEmbedded()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML dataset. Unknown fields are rejected.
func Parse(raw []byte, source string) (*Dataset, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrInvalidDataset, source, err)
	}

	if err := Validate(doc.Industries, doc.Sectors); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	ds := &Dataset{
		source:     source,
		industries: doc.Industries,
		sectors:    doc.Sectors,
		index:      make(map[string]int, len(doc.Industries)*2),
		sectorIdx:  make(map[string]int, len(doc.Sectors)),
	}
	for i, p := range doc.Industries {
		ds.index[normalize(p.Name)] = i
		ds.index[normalize(p.Slug)] = i
	}
	for i, s := range doc.Sectors {
		ds.sectorIdx[normalize(s.Name)] = i
	}
	return ds, nil
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Source names where the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// Industries returns all profiles in dataset order.
func (d *Dataset) Industries() []models.IndustryProfile {
	out := make([]models.IndustryProfile, len(d.industries))
	for i, p := range d.industries {
		out[i] = cloneProfile(p)
	}
	return out
}

// Names returns the industry names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.industries))
	for i, p := range d.industries {
		names[i] = p.Name
	}
	return names
}

// Industry looks a profile up by name or slug, ignoring case and surrounding space.
func (d *Dataset) Industry(nameOrSlug string) (models.IndustryProfile, bool) {
	i, ok := d.index[normalize(nameOrSlug)]
	if !ok {
		return models.IndustryProfile{}, false
	}
	return cloneProfile(d.industries[i]), true
}

// Default returns the first profile, which a fresh selection starts on.
func (d *Dataset) Default() models.IndustryProfile {
	return cloneProfile(d.industries[0])
}

// Sectors returns the IPCC sector references in dataset order.
func (d *Dataset) Sectors() []models.SectorReference {
	out := make([]models.SectorReference, len(d.sectors))
	for i, s := range d.sectors {
		out[i] = cloneSector(s)
	}
	return out
}

// Sector looks a sector reference up by name.
func (d *Dataset) Sector(name string) (models.SectorReference, bool) {
	i, ok := d.sectorIdx[normalize(name)]
	if !ok {
		return models.SectorReference{}, false
	}
	return cloneSector(d.sectors[i]), true
}

// SectorsFor returns the references for the sectors a profile depends on.
// Sectors without a reference entry (e.g. "Multiple end-use") are skipped.
func (d *Dataset) SectorsFor(p models.IndustryProfile) []models.SectorReference {
	out := make([]models.SectorReference, 0, len(p.Scope3Categories))
	for _, name := range p.Sectors() {
		if s, ok := d.Sector(name); ok {
			out = append(out, s)
		}
	}
	return out
}

func cloneProfile(p models.IndustryProfile) models.IndustryProfile {
	p.Scope3Categories = append([]models.Scope3Category(nil), p.Scope3Categories...)
	p.Challenges = append([]string(nil), p.Challenges...)
	return p
}

func cloneSector(s models.SectorReference) models.SectorReference {
	s.Interventions = append([]models.Intervention(nil), s.Interventions...)
	return s
}
