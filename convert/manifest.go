package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bodgit/txi"
	"gopkg.in/yaml.v3"
)

var errNoSource = errors.New("convert: texture has no source")

type outputFormat txi.OutputFormat

func (f *outputFormat) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := txi.ParseOutputFormat(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*f = outputFormat(parsed)
	return nil
}

type rleMode txi.RLEMode

func (m *rleMode) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := txi.ParseRLEMode(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = rleMode(parsed)
	return nil
}

// Entry is one texture in a Manifest. Unset fields take their value from
// the manifest defaults.
type Entry struct {
	Source string        `yaml:"source"`
	Output string        `yaml:"output"`
	Format *outputFormat `yaml:"format"`
	RLE    *rleMode      `yaml:"rle"`
	Colors *int          `yaml:"colors"`
}

// Manifest lists the textures to build. Paths are relative to the manifest
// file.
//
//	defaults:
//	  format: RGBA8888
//	  rle: auto
//	textures:
//	  - source: ui/button.png
//	  - source: fonts/small.png
//	    output: fonts/small_a8.txi
//	    format: A8
//	    rle: true
type Manifest struct {
	Defaults Entry   `yaml:"defaults"`
	Textures []Entry `yaml:"textures"`

	dir string
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(file string) (*Manifest, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	m := new(Manifest)
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	m.dir = filepath.Dir(file)

	return m, nil
}

func (e Entry) options(defaults Options) Options {
	o := defaults
	if e.Format != nil {
		o.Format = txi.OutputFormat(*e.Format)
	}
	if e.RLE != nil {
		o.RLE = txi.RLEMode(*e.RLE)
	}
	if e.Colors != nil {
		o.Colors = *e.Colors
	}
	return o
}

func (m *Manifest) path(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(m.dir, filepath.FromSlash(file))
}

func (m *Manifest) jobs() ([]job, error) {
	defaults := m.Defaults.options(Options{})

	jobs := make([]job, 0, len(m.Textures))
	for i, e := range m.Textures {
		if e.Source == "" {
			return nil, fmt.Errorf("texture %d: %w", i, errNoSource)
		}

		j := job{
			src: m.path(e.Source),
			o:   e.options(defaults),
		}
		if e.Output != "" {
			j.dst = m.path(e.Output)
		} else {
			j.dst = textureName(j.src)
		}

		jobs = append(jobs, j)
	}

	return jobs, nil
}

// Manifest converts every texture listed in the manifest file.
func (c *Converter) Manifest(file string) error {
	m, err := LoadManifest(file)
	if err != nil {
		return err
	}

	jobs, err := m.jobs()
	if err != nil {
		return err
	}

	c.logger.Printf("Building %d textures from \"%s\"\n", len(jobs), file)

	return c.run(func(ctx context.Context) (<-chan job, <-chan error, error) {
		return c.listJobs(ctx, jobs)
	})
}
