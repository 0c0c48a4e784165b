/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package app_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mrx/cmd/namectl/app"
)

func run(t *testing.T, fs vfs.FileSystem, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	cmd := app.New(fs)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func testfs(t *testing.T, files map[string]string) vfs.FileSystem {
	t.Helper()
	fs := memoryfs.New()
	for name, content := range files {
		require.NoError(t, vfs.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestValidateDefault(t *testing.T) {
	out, err := run(t, memoryfs.New(), "", "validate")
	require.NoError(t, err)
	assert.Equal(t, "OK: 16 schemes registered\n", out)
}

func TestValidateFile(t *testing.T) {
	fs := testfs(t, map[string]string{
		"/ok.yaml": `
schemes:
- impl: refs.string
- impl: refs.string
`,
		"/level.yaml": `
schemes:
- impl: refs.string
  priority: nowhere
`,
		"/unknown.yaml": `
schemes:
- impl: refs.none
`,
	})

	out, err := run(t, fs, "", "validate", "-f", "/ok.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `conflict: shape "value.string"`)
	assert.Contains(t, out, "OK: 2 schemes registered")

	_, err = run(t, fs, "", "validate", "-f", "/level.yaml")
	assert.ErrorContains(t, err, "1 of 1 declarations were rejected")

	_, err = run(t, fs, "", "validate", "-f", "/unknown.yaml")
	assert.ErrorContains(t, err, "refs.none")

	_, err = run(t, fs, "", "validate", "-f", "/missing.yaml")
	assert.Error(t, err)
}

func TestSchemes(t *testing.T) {
	out, err := run(t, memoryfs.New(), "", "schemes")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 4)
	assert.Contains(t, lines[1], "SHAPE")
	// later declarations of a level rank higher
	assert.Contains(t, lines[3], "value.named")
	assert.Contains(t, out, "fallback#15")
	assert.Contains(t, out, "uuid.UUID")

	out, err = run(t, memoryfs.New(), "", "schemes", "-m", "string")
	require.NoError(t, err)
	assert.Contains(t, out, "value.string")
	assert.NotContains(t, out, "value.bool")
}

func TestDecode(t *testing.T) {
	fs := testfs(t, map[string]string{
		"/name.json": `{"type":"value.list","items":[{"type":"value.string","value":"a"},{"type":"value.int","value":2}]}`,
	})

	out, err := run(t, fs, "", "decode", "-o", "canonical", "-r", "/name.json")
	require.NoError(t, err)
	assert.Equal(t,
		`{"items":[{"type":"value.string","value":"a"},{"type":"value.int","value":2}],"type":"value.list"}`+"\n"+
			`value: []interface {}{"a", 2}`+"\n", out)

	out, err = run(t, fs, "type: value.string\nvalue: hello\n", "decode", "-")
	require.NoError(t, err)
	assert.Equal(t, "type: value.string\nvalue: hello\n\n", out)

	_, err = run(t, fs, `{"type":"value.nope"}`, "decode", "-")
	assert.Error(t, err)

	_, err = run(t, fs, "", "decode", "-o", "xml", "/name.json")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestLogLevel(t *testing.T) {
	_, err := run(t, memoryfs.New(), "", "--log-level", "loud", "validate")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = run(t, memoryfs.New(), "", "--log-level", "debug", "validate")
	assert.NoError(t, err)
}
