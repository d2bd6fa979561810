// Package scripts resolves tool script references and materializes
// placeholder executables for tools that have not been installed yet.
package scripts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"toolkit/pkg/logx"
)

var placeholderTemplate = template.Must(template.New("placeholder").Funcs(template.FuncMap{
	"quote": shellQuote,
}).Parse(`#!/bin/sh
# {{.Name}} - Automation Script
# Generated placeholder. Replace with your actual implementation.
#
# Invoked with exactly one argument: a JSON object of the collected inputs.
# Print human-readable output and exit 0 on success, non-zero on failure.

if [ "$#" -gt 0 ]; then
	printf 'Received inputs: %s\n' "$1"
fi

printf '%s\n' {{quote (printf "🔨 This is a placeholder script for: %s" .Name)}}
printf '%s\n' {{quote (printf "📝 Description: %s" .Description)}}
printf '%s\n' '⚡ Add your automation logic here!'
exit 0
`))

// Placeholder writes stand-in shell scripts.
type Placeholder struct {
	logger *logx.Logger
}

// NewPlaceholder creates a placeholder materializer.
func NewPlaceholder() *Placeholder {
	return &Placeholder{logger: logx.NewLogger("scripts")}
}

// Materialize writes an executable placeholder for the named tool at path,
// creating parent directories. An existing file at path is replaced, so
// repeated calls leave exactly one file.
func (p *Placeholder) Materialize(path, name, description string) error {
	var buf bytes.Buffer
	if err := placeholderTemplate.Execute(&buf, struct{ Name, Description string }{name, description}); err != nil {
		return fmt.Errorf("failed to render placeholder: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create tools directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".placeholder-*")
	if err != nil {
		return fmt.Errorf("failed to create placeholder: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write placeholder: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write placeholder: %w", err)
	}
	if err := os.Chmod(tmpName, 0755); err != nil {
		return fmt.Errorf("failed to mark placeholder executable: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to install placeholder: %w", err)
	}

	p.logger.Info("📝 Created placeholder for %s at %s", name, path)
	return nil
}

// Resolve maps a script reference to a path under toolsDir. Absolute
// references are returned unchanged.
func Resolve(toolsDir, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(toolsDir, ref)
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
