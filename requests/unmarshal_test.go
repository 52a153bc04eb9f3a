package requests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rootID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	fileID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

const sampleYAML = `
uuid: ` + rootID + `
children:
  - type: folder
    name: r2
    children:
      - type: file
        name: f2
        size: 1234
      - type: shortcut
        name: s1
        target: ` + fileID + `
  - type: file
    name: f1
    size: 899
    uuid: ` + fileID + `
  - type: file
    name: big
    size: 2 kB
  - type: shortcut
    name: top
    target: ` + rootID + `
`

const sampleJSON = `{
  "uuid": "` + rootID + `",
  "children": [
    {"type": "folder", "name": "r2", "children": [
      {"type": "file", "name": "f2", "size": 1234},
      {"type": "shortcut", "name": "s1", "target": "` + fileID + `"}
    ]},
    {"type": "file", "name": "f1", "size": 899, "uuid": "` + fileID + `"},
    {"type": "file", "name": "big", "size": "2 kB"},
    {"type": "shortcut", "name": "top", "target": "` + rootID + `"}
  ]
}`

func TestUnmarshal_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		data   string
	}{
		{YAMLFormat, sampleYAML},
		{JSONFormat, sampleJSON},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			m, err := Unmarshal([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, uuid.MustParse(rootID), m.UUID)
			require.Len(t, m.Children, 4)

			r2 := m.Children[0]
			assert.Equal(t, FolderNodeType, r2.Type)
			require.Len(t, r2.Children, 2)
			assert.Equal(t, uint64(1234), r2.Children[0].Size)
			assert.Equal(t, uuid.MustParse(fileID), r2.Children[1].Target)

			assert.Equal(t, uuid.MustParse(fileID), m.Children[1].UUID)
			assert.Equal(t, uint64(2000), m.Children[2].Size)
			assert.NotEqual(t, uuid.Nil, m.Children[2].UUID, "missing uuids must be generated")

			assert.Equal(t, map[NodeType]int{FolderNodeType: 1, FileNodeType: 3, ShortcutNodeType: 2}, m.Count())
		})
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{"unknown_type", `children: [{type: pipe, name: p}]`, errors.CodeSchemaFailed},
		{"shortcut_without_target", `children: [{type: shortcut, name: s}]`, errors.CodeSchemaFailed},
		{"file_with_children", `children: [{type: file, name: f, children: [{type: file, name: g}]}]`, errors.CodeSchemaFailed},
		{"folder_with_size", `children: [{type: folder, name: d, size: 3}]`, errors.CodeSchemaFailed},
		{"bad_uuid", `children: [{type: file, name: f, uuid: nope}]`, errors.CodeSchemaFailed},
		{"nil_uuid", `children: [{type: file, name: f, uuid: 00000000-0000-0000-0000-000000000000}]`, errors.CodeSchemaFailed},
		{"bad_target", `children: [{type: shortcut, name: s, target: nope}]`, errors.CodeSchemaFailed},
		{"duplicate_uuid", `
children:
  - {type: file, name: a, uuid: ` + fileID + `}
  - {type: file, name: b, uuid: ` + fileID + `}`, errors.CodeSchemaFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Unmarshal([]byte(tt.data), YAMLFormat)

			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Unmarshal([]byte(`{"children": [`), JSONFormat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal manifest")

	_, err = Unmarshal([]byte(`{}`), Format("toml"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "tree.yml")
	jsonPath := filepath.Join(dir, "tree.json")
	txtPath := filepath.Join(dir, "tree.txt")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o600))
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o600))
	require.NoError(t, os.WriteFile(txtPath, []byte(sampleYAML), 0o600))

	fromYAML, err := LoadFile(yamlPath)
	require.NoError(t, err)
	fromJSON, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, fromYAML.Count(), fromJSON.Count())

	_, err = LoadFile(txtPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown manifest file extension")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}
