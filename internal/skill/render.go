package skill

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// Response templates compiled into the binary, the same embedding pattern
// the migrations package uses for the registry schema.
//
//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names within the embedded set.
const (
	applyTemplate = "apply.tmpl"
	helpTemplate  = "help.tmpl"
)

// requiredTemplates must all parse for the skill to start.
var requiredTemplates = []string{applyTemplate, helpTemplate}

// renderer holds the parsed response templates.
//
// Templates are parsed once during skill construction so a missing or
// unparsable template is a startup error, never a runtime one.
type renderer struct {
	templates *template.Template
}

// newRenderer parses all templates from the given filesystem and verifies
// the required set is present.
func newRenderer(fsys fs.FS) (*renderer, error) {
	templates, err := template.New("responses").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(fsys, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing response templates: %w", err)
	}

	for _, name := range requiredTemplates {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
	}

	return &renderer{templates: templates}, nil
}

// applyData is the rendering context for the scene confirmation template.
type applyData struct {
	Parameters  Parameters
	DeviceCount int
}

// renderApply renders the confirmation for an applied set of scenes.
// Phrasing pluralizes on the target count ("scene has" / "scenes have")
// and on the affected-device count independently.
func (r *renderer) renderApply(params Parameters) (string, error) {
	var buf strings.Builder
	data := applyData{
		Parameters:  params,
		DeviceCount: params.DeviceCount(),
	}
	if err := r.templates.ExecuteTemplate(&buf, applyTemplate, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", applyTemplate, err)
	}
	return buf.String(), nil
}

// renderHelp renders the static usage text.
func (r *renderer) renderHelp() (string, error) {
	var buf strings.Builder
	if err := r.templates.ExecuteTemplate(&buf, helpTemplate, nil); err != nil {
		return "", fmt.Errorf("executing template %s: %w", helpTemplate, err)
	}
	return buf.String(), nil
}
