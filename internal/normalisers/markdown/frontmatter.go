package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

// Delimiter opens and closes a front-matter block.
const Delimiter = "---"

// BuildFrontMatter serialises document metadata into a YAML front-matter block.
// It returns an empty string when there is nothing to write. A cover, when
// present, is stored under the "cover" key and wins over a property of that name.
func BuildFrontMatter(properties map[string]any, cover *domain.Cover) string {
	fields := make(map[string]any, len(properties)+1)
	for k, v := range properties {
		fields[k] = v
	}
	if cover != nil {
		fields["cover"] = cover
	}
	if len(fields) == 0 {
		return ""
	}

	body, err := encodeYAML(fields)
	if err != nil {
		// Best effort: fall back to the string form of every value.
		for k, v := range fields {
			fields[k] = fmt.Sprint(v)
		}
		if body, err = encodeYAML(fields); err != nil {
			return ""
		}
	}
	return Delimiter + "\n" + body + Delimiter + "\n"
}

// encodeYAML marshals v; yaml.v3 panics on kinds it cannot represent.
func encodeYAML(v any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("encode front-matter: %v", r)
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
