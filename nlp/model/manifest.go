package model

import (
	"io"
	"sort"
	"strings"

	"seqlab/util/conf"
	"seqlab/util/errs"
)

const (
	MANIFEST_ENTRY = "manifest.properties"

	FORMAT_VERSION_KEY = "format-version"
	TOOL_NAME_KEY      = "tool-name"
	LANGUAGE_KEY       = "language-code"
	BEAM_SIZE_KEY      = "beam-size"
	FACTORY_KEY        = "factory-class"
	TRAINING_UUID_KEY  = "training-uuid"

	FORMAT_VERSION     = 1
	MAX_FORMAT_VERSION = 1
)

var requiredKeys = []string{FORMAT_VERSION_KEY, TOOL_NAME_KEY, LANGUAGE_KEY}

// Manifest is an insertion ordered string map. It is written sorted by key.
type Manifest struct {
	keys   []string
	values map[string]string
}

func NewManifest() *Manifest {
	return &Manifest{values: make(map[string]string)}
}

// Set trims key and value. Keys may not be empty, contain the separator or
// start a comment; neither may span lines.
func (m *Manifest) Set(key, value string) error {
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if key == "" || key[0] == conf.COMMENT_PREFIX || strings.Contains(key, conf.PROPERTY_SEPARATOR) {
		return errs.NewFormatError("invalid manifest key %q", key)
	}
	if strings.ContainsAny(key+value, "\r\n") {
		return errs.NewFormatError("manifest entry %q spans lines", key)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return nil
}

func (m *Manifest) Get(key string) (string, bool) {
	v, exists := m.values[key]
	return v, exists
}

func (m *Manifest) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m *Manifest) Len() int {
	return len(m.keys)
}

func (m *Manifest) Copy() *Manifest {
	c := &Manifest{m.Keys(), make(map[string]string, len(m.values))}
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

func (m *Manifest) Write(writer io.Writer) error {
	keys := m.Keys()
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k + conf.PROPERTY_SEPARATOR + m.values[k] + "\n")
	}
	_, err := io.WriteString(writer, b.String())
	return err
}

func ReadManifest(reader io.Reader) (*Manifest, error) {
	props, err := conf.ReadProperties(reader)
	if err != nil {
		return nil, errs.WrapFormat(err, "reading manifest")
	}
	m := NewManifest()
	for _, prop := range props {
		if _, exists := m.values[prop.Key]; exists {
			return nil, errs.NewFormatError("duplicate manifest key %q", prop.Key)
		}
		if err := m.Set(prop.Key, prop.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}
