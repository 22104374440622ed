package conf

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	COMMENT_PREFIX     = '#'
	PROPERTY_SEPARATOR = "="
)

type Conf struct {
	Values []string
}

// Read returns the non empty, non comment lines of reader.
func Read(reader io.Reader) (*Conf, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	retval := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if len(line) > 0 && line[0] != COMMENT_PREFIX {
			retval = append(retval, line)
		}
	}
	return &Conf{retval}, nil
}

func ReadFile(filename string) (*Conf, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

// Property is a single key=value line, kept in file order.
type Property struct {
	Key, Value string
}

// ReadProperties parses key=value lines. The value is everything after the
// first separator; surrounding whitespace is trimmed from both sides.
func ReadProperties(reader io.Reader) ([]Property, error) {
	c, err := Read(reader)
	if err != nil {
		return nil, err
	}
	props := make([]Property, 0, len(c.Values))
	for i, line := range c.Values {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, PROPERTY_SEPARATOR)
		if !found {
			return nil, fmt.Errorf("line %d: missing %q in %q", i+1, PROPERTY_SEPARATOR, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", i+1)
		}
		props = append(props, Property{key, strings.TrimSpace(value)})
	}
	return props, nil
}

func ReadPropertiesFile(filename string) ([]Property, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadProperties(file)
}
