package domain

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest_DefaultsAndResolution(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
id: insee-nat-2023
source: nat2023.csv
source_url: https://www.insee.fr/fr/statistiques/8205621
license: Licence Ouverte
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.ID != "insee-nat-2023" {
		t.Fatalf("ID = %q", m.ID)
	}
	if m.Source != filepath.Join(filepath.Dir(path), "nat2023.csv") {
		t.Fatalf("Source = %q, want resolved against the manifest dir", m.Source)
	}
	if m.Format.Delimiter != ";" {
		t.Fatalf("Delimiter = %q, want the insee default", m.Format.Delimiter)
	}
	c := m.Format.Columns
	if c.Sex != "sexe" || c.Name != "preusuel" || c.Year != "annais" || c.Count != "nombre" {
		t.Fatalf("Columns = %+v", c)
	}
}

func TestLoadManifest_ExplicitFormatWins(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
id: custom
source: /data/custom.csv
format:
  delimiter: ","
  columns:
    sex: gender
    name: first_name
    year: birth_year
    count: births
    geography: dpt
    geography_keep: FR
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Source != "/data/custom.csv" {
		t.Fatalf("absolute Source must be untouched, got %q", m.Source)
	}
	if m.Format.Delimiter != "," || m.Format.Columns.Name != "first_name" {
		t.Fatalf("Format = %+v", m.Format)
	}
	if m.Format.Columns.Geography != "dpt" || m.Format.Columns.GeographyKeep != "FR" {
		t.Fatalf("Columns = %+v", m.Format.Columns)
	}
}

func TestLoadManifest_MissingID(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "source: x.csv\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
