package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOptionsFile is looked up in the working directory when no
// explicit options path is given. YAML is a superset of JSON, so the
// same decoder reads both.
const DefaultOptionsFile = "config.json"

// Options are the per-run digest settings a CLI user may keep in a file.
type Options struct {
	Domains   DomainList `yaml:"domains"`
	Prompt    string     `yaml:"prompt"`
	Days      int        `yaml:"days"`
	DateRange string     `yaml:"dateRange"`
}

// DefaultOptions mirrors the values used when neither file nor flags
// say otherwise.
func DefaultOptions() Options {
	return Options{
		Domains: DomainList{"AI", "Java"},
		Days:    7,
	}
}

// DomainList accepts either a YAML sequence or a comma-separated string.
type DomainList []string

func (d *DomainList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*d = SplitDomains(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		out := make(DomainList, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		*d = out
		return nil
	default:
		return fmt.Errorf("domains: expected a list or comma-separated string, got %s", value.Tag)
	}
}

// SplitDomains splits a comma-joined domain string, trimming entries and
// dropping empty ones. Order and duplicates are preserved.
func SplitDomains(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadOptions reads options from path, or from DefaultOptionsFile in the
// working directory when path is empty. A missing default file is not an
// error; a missing explicit file is.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	explicit := path != ""
	if !explicit {
		path = DefaultOptionsFile
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("reading options file %s: %w", path, err)
	}

	var fromFile Options
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return opts, fmt.Errorf("parsing options file %s: %w", path, err)
	}

	if len(fromFile.Domains) > 0 {
		opts.Domains = fromFile.Domains
	}
	if fromFile.Prompt != "" {
		opts.Prompt = fromFile.Prompt
	}
	if fromFile.Days != 0 {
		opts.Days = fromFile.Days
	}
	if fromFile.DateRange != "" {
		opts.DateRange = fromFile.DateRange
	}
	return opts, nil
}
