package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"
)

// Format is a manifest encoding
type Format string

const (
	YAMLFormat Format = "yaml"
	JSONFormat Format = "json"
)

// FormatFromPath picks the format by file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return YAMLFormat, nil
	case ".json":
		return JSONFormat, nil
	default:
		return "", fmt.Errorf("unknown manifest file extension: %s", path)
	}
}

// LoadFile reads and converts a manifest file.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadFile(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, format)
}

// Unmarshal decodes a manifest and converts it to core requests with
// defaults applied
func Unmarshal(data []byte, format Format) (*Manifest, error) {
	var dto ManifestDTO
	switch format {
	case YAMLFormat:
		if err := yaml.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	case JSONFormat:
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown manifest format: %q", format)
	}
	return convertManifestDTO(&dto)
}

// converter tracks linking UUIDs so duplicates are rejected
type converter struct {
	seen linkIDs
}

func convertManifestDTO(dto *ManifestDTO) (*Manifest, error) {
	c := converter{seen: make(linkIDs)}

	id, err := c.linkID(dto.UUID, "manifest")
	if err != nil {
		return nil, err
	}
	children, err := c.convertAll(dto.Children, "")
	if err != nil {
		return nil, err
	}
	return &Manifest{UUID: id, Children: children}, nil
}

func (c *converter) convertAll(dtos []NodeRequestDTO, parent string) ([]*NodeRequest, error) {
	reqs := make([]*NodeRequest, 0, len(dtos))
	for i := range dtos {
		req, err := c.convertNodeDTO(&dtos[i], parent)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Conversion logic with defaults in the unmarshaling layer
func (c *converter) convertNodeDTO(dto *NodeRequestDTO, parent string) (*NodeRequest, error) {
	where := parent + "/" + dto.Name
	schemaErr := func(msg string) error {
		return errors.WithContext(errors.New(errors.CodeSchemaFailed, msg), "node", where)
	}

	id, err := c.linkID(dto.UUID, where)
	if err != nil {
		return nil, err
	}
	req := &NodeRequest{Type: dto.Type, Name: dto.Name, UUID: id}

	switch dto.Type {
	case FileNodeType:
		if dto.Target != nil || len(dto.Children) > 0 {
			return nil, schemaErr("files take only a size")
		}
		req.Size = util.ValueOrDefault(dto.Size, 0).Bytes()
	case FolderNodeType:
		if dto.Target != nil || dto.Size != nil {
			return nil, schemaErr("folders take only children")
		}
		if req.Children, err = c.convertAll(dto.Children, where); err != nil {
			return nil, err
		}
	case ShortcutNodeType:
		if dto.Size != nil || len(dto.Children) > 0 {
			return nil, schemaErr("shortcuts take only a target")
		}
		if dto.Target == nil {
			return nil, schemaErr("shortcut requires a target")
		}
		target, err := uuid.Parse(*dto.Target)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeSchemaFailed, "invalid shortcut target at %s", where)
		}
		req.Target = target
	default:
		return nil, schemaErr(fmt.Sprintf("unknown node type %q", dto.Type))
	}
	return req, nil
}

// linkID parses raw or generates a fresh UUID, rejecting duplicates
func (c *converter) linkID(raw *string, where string) (uuid.UUID, error) {
	id := uuid.New()
	if raw != nil {
		var err error
		if id, err = uuid.Parse(*raw); err != nil {
			return uuid.Nil, errors.Wrapf(err, errors.CodeSchemaFailed, "invalid uuid at %s", where)
		}
	}
	if err := c.seen.claim(id, where); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
