// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

// Package cmdctx provides project context loading for CLI commands.
package cmdctx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ryanaidilp/form-gear-sub001/internal/config"
	"github.com/ryanaidilp/form-gear-sub001/internal/engine"
	"github.com/ryanaidilp/form-gear-sub001/internal/response"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

var (
	// ErrNotInitialized indicates no formgear.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a formgear project (formgear.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTemplateNotFound indicates the template file referenced by config doesn't exist.
	ErrTemplateNotFound = errors.New("template file not found")

	// ErrInvalidTemplate indicates the template file exists but couldn't be parsed.
	ErrInvalidTemplate = errors.New("invalid form template")
)

// ConfigFileName is the name of the formgear configuration file.
const ConfigFileName = "formgear.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration, the parsed template and
// the live form session seeded with any saved response.
type Context struct {
	// Dir is the project directory the config was loaded from.
	Dir string

	// Config is the parsed formgear.yaml.
	Config *config.Config

	// Template is the parsed form template.
	Template *template.Template

	// Session is the live form session over Template.
	Session *engine.Session

	// Response is the answer payload; freshly created when none was saved.
	Response *response.Response

	// ResponsePath is where the payload is saved; empty when the config does
	// not name one.
	ResponsePath string
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the formgear Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	fgCtx, err := LoadDir(cwd)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, contextKey{}, fgCtx), nil
}

// LoadDir resolves the project context rooted at dir.
func LoadDir(dir string) (*Context, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	templatePath := cfg.Template
	if !filepath.IsAbs(templatePath) {
		templatePath = filepath.Join(dir, templatePath)
	}
	if _, statErr := os.Stat(templatePath); os.IsNotExist(statErr) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
	}

	tmpl, err := template.ParseFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	session := engine.NewSession(tmpl, tmpl.Properties, nil)

	fgCtx := &Context{
		Dir:      dir,
		Config:   cfg,
		Template: tmpl,
		Session:  session,
	}

	if cfg.Response != "" {
		responsePath := cfg.Response
		if !filepath.IsAbs(responsePath) {
			responsePath = filepath.Join(dir, responsePath)
		}
		fgCtx.ResponsePath = responsePath

		if _, statErr := os.Stat(responsePath); statErr == nil {
			resp, loadErr := response.Load(responsePath)
			if loadErr != nil {
				return nil, loadErr
			}
			resp.Seed(session)
			fgCtx.Response = resp
		}
	}
	if fgCtx.Response == nil {
		fgCtx.Response = response.New(tmpl.Title, tmpl.Version)
	}
	return fgCtx, nil
}

// SaveResponse snapshots the session into the response payload and writes it
// to the configured path.
func (c *Context) SaveResponse() error {
	if c.ResponsePath == "" {
		return errors.New("no response path configured; set response in formgear.yaml")
	}
	c.Response.Extract(c.Session)
	return c.Response.Save(c.ResponsePath)
}

// From extracts the formgear Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if fgCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return fgCtx
	}
	return nil
}
