package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// patternFile is the layout of a -f file:
//
//	patterns:
//	  - name: phone
//	    pattern: '\d{3}-\d{4}'
//	  - pattern: '^ERROR'
type patternFile struct {
	Patterns []namedPattern `yaml:"patterns"`
}

type namedPattern struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// loadPatternFile reads and checks a pattern file. Entries without a name are
// named after their position. All problems are reported together.
func loadPatternFile(path string) ([]namedPattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file %s: %w", path, err)
	}
	if len(pf.Patterns) == 0 {
		return nil, fmt.Errorf("pattern file %s: no patterns", path)
	}

	var result *multierror.Error
	for i := range pf.Patterns {
		p := &pf.Patterns[i]
		if p.Name == "" {
			p.Name = path + "#" + strconv.Itoa(i+1)
		}
		if p.Pattern == "" {
			result = multierror.Append(result, fmt.Errorf("pattern file %s: entry %s has no pattern", path, p.Name))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return pf.Patterns, nil
}
