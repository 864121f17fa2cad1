package utils

import (
	"bytes"
	"fmt"
	"text/template"
)

// RenderTemplate parses text as a template named name and executes it with data.
// Missing map keys are reported as errors.
func RenderTemplate(name, text string, data any) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}

	return buf.String(), nil
}
