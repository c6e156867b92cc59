package email

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"
)

type Template string

const (
	TemplateGoalReached Template = "goal_reached"
)

//go:embed templates/emails/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/emails/*.html"))

// RenderTemplate executes the named email template.
func RenderTemplate(name Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}
