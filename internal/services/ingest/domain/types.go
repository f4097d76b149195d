// Package domain holds the ingest manifest schema and run results
package domain

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	perr "prenoms/internal/platform/errors"
)

// Manifest describes a dataset source: where it lives, its licence, and
// how to read its CSV layout
type Manifest struct {
	ID        string     `yaml:"id"`
	Source    string     `yaml:"source"`
	SourceURL string     `yaml:"source_url,omitempty"`
	License   string     `yaml:"license,omitempty"`
	Format    FormatSpec `yaml:"format"`
}

// FormatSpec describes the CSV layout by column name, resolved against the
// file's header row
type FormatSpec struct {
	Delimiter string     `yaml:"delimiter"`
	Columns   ColumnSpec `yaml:"columns"`
}

// ColumnSpec names the columns the reader needs.
// Geography is optional: when set, only rows whose value equals GeographyKeep
// are ingested (the national aggregate in departmental files)
type ColumnSpec struct {
	Sex           string `yaml:"sex"`
	Name          string `yaml:"name"`
	Year          string `yaml:"year"`
	Count         string `yaml:"count"`
	Geography     string `yaml:"geography,omitempty"`
	GeographyKeep string `yaml:"geography_keep,omitempty"`
}

// LoadManifest reads and parses a manifest yaml file.
// A relative Source is resolved against the manifest's directory
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "read manifest %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, perr.Wrapf(err, perr.ErrorCodeValidation, "parse manifest %s", path)
	}
	if m.ID == "" {
		return Manifest{}, perr.Newf(perr.ErrorCodeValidation, "manifest %s: missing id", path)
	}
	if m.Source == "" {
		return Manifest{}, perr.Newf(perr.ErrorCodeValidation, "manifest %s: missing source", path)
	}
	if m.Format.Delimiter == "" {
		m.Format.Delimiter = ";"
	}
	c := &m.Format.Columns
	if c.Sex == "" {
		c.Sex = "sexe"
	}
	if c.Name == "" {
		c.Name = "preusuel"
	}
	if c.Year == "" {
		c.Year = "annais"
	}
	if c.Count == "" {
		c.Count = "nombre"
	}
	if !filepath.IsAbs(m.Source) {
		m.Source = filepath.Join(filepath.Dir(path), m.Source)
	}
	return m, nil
}

// RunResult summarizes one ingest run
type RunResult struct {
	RunID    string
	Source   string
	Read     int64
	Inserted int64
	Skipped  int64
	Names    int64
	MinYear  int
	MaxYear  int
}
