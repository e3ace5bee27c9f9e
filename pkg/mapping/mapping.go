package mapping

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mapping canonicalizes free-text payment-method or notes values to account
// names before resolution, e.g. "Visa ending 4242" -> "Checking".
type Mapping struct {
	Aliases map[string]string `yaml:"aliases"`
}

// Load reads an alias file. An empty path yields an empty mapping.
func Load(path string) (*Mapping, error) {
	if path == "" {
		return &Mapping{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping yaml: %w", err)
	}
	return &m, nil
}

// Resolve returns the aliased account name for text, if any. Lookup is
// case-insensitive on trimmed keys.
func (m *Mapping) Resolve(text string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return "", false
	}
	for alias, account := range m.Aliases {
		if strings.ToLower(strings.TrimSpace(alias)) == needle {
			return account, true
		}
	}
	return "", false
}
