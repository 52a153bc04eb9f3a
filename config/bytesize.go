package config

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// ByteSize is a byte count that decodes from either a plain integer or a
// humanized string such as "10 kB" or "4MiB".
type ByteSize uint64

// ParseByteSize parses plain or humanized byte counts
func ParseByteSize(s string) (ByteSize, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}
	return ByteSize(n), nil
}

// Bytes returns the raw byte count
func (b ByteSize) Bytes() uint64 {
	return uint64(b)
}

// String renders b in SI units, e.g. "10 kB"
func (b ByteSize) String() string {
	return humanize.Bytes(uint64(b))
}

func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("byte size must be a scalar, line %d", value.Line)
	}
	n, err := ParseByteSize(value.Value)
	if err != nil {
		return err
	}
	*b = n
	return nil
}

func (b ByteSize) MarshalYAML() (any, error) {
	return uint64(b), nil
}

func (b *ByteSize) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	n, err := ParseByteSize(raw)
	if err != nil {
		return err
	}
	*b = n
	return nil
}

func (b ByteSize) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(b), 10)), nil
}
