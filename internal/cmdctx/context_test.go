// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package cmdctx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanaidilp/form-gear-sub001/internal/response"
)

const fixtureTemplate = `{
	"formgear": "1.0.0",
	"title": "My Survey",
	"components": [
		{"dataKey": "main", "type": "section", "components": [
			{"dataKey": "name", "type": "text"}
		]}
	]
}`

func writeProject(t *testing.T, configYAML, templateJSON string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(configYAML), 0o600))
	if templateJSON != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "form.json"), []byte(templateJSON), 0o600))
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	tests := []struct {
		name    string
		dir     func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "not initialized",
			dir:     func(t *testing.T) string { return t.TempDir() },
			wantErr: ErrNotInitialized,
		},
		{
			name: "invalid config",
			dir: func(t *testing.T) string {
				return writeProject(t, "version: 99\ntemplate: form.json\n", fixtureTemplate)
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "template not found",
			dir: func(t *testing.T) string {
				return writeProject(t, "version: 1\ntemplate: form.json\n", "")
			},
			wantErr: ErrTemplateNotFound,
		},
		{
			name: "invalid template",
			dir: func(t *testing.T) string {
				return writeProject(t, "version: 1\ntemplate: form.json\n", `{"formgear": "0.0.1"}`)
			},
			wantErr: ErrInvalidTemplate,
		},
		{
			name: "valid",
			dir: func(t *testing.T) string {
				return writeProject(t, "version: 1\ntemplate: form.json\n", fixtureTemplate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fgCtx, err := LoadDir(tt.dir(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, fgCtx)
			assert.Equal(t, "My Survey", fgCtx.Template.Title)
			require.NotNil(t, fgCtx.Session)
			assert.NotNil(t, fgCtx.Session.Index().GetComponent("name"))
			assert.NotEmpty(t, fgCtx.Response.ID)
		})
	}
}

func TestLoadDirSeedsSavedResponse(t *testing.T) {
	dir := writeProject(t, "version: 1\ntemplate: form.json\nresponse: response.json\n", fixtureTemplate)

	resp := response.New("My Survey", "")
	resp.Answers = []response.Answer{{DataKey: "name", Answer: "Ana"}}
	require.NoError(t, resp.Save(filepath.Join(dir, "response.json")))

	fgCtx, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, fgCtx.Response.ID)
	assert.Equal(t, "Ana", fgCtx.Session.Index().GetComponent("name").Answer)
}

func TestSaveResponse(t *testing.T) {
	dir := writeProject(t, "version: 1\ntemplate: form.json\nresponse: response.json\n", fixtureTemplate)

	fgCtx, err := LoadDir(dir)
	require.NoError(t, err)
	fgCtx.Session.ApplyAnswer("name", "Ana")
	require.NoError(t, fgCtx.SaveResponse())

	back, err := response.Load(filepath.Join(dir, "response.json"))
	require.NoError(t, err)
	require.Len(t, back.Answers, 1)
	assert.Equal(t, "Ana", back.Answers[0].Answer)
}

func TestSaveResponseWithoutPath(t *testing.T) {
	dir := writeProject(t, "version: 1\ntemplate: form.json\n", fixtureTemplate)

	fgCtx, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Error(t, fgCtx.SaveResponse())
}

func TestFrom_NoContextStored(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}
