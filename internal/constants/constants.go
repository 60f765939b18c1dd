package constants

import (
	"embed"
	"html/template"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	Base      = "base"
	templates = "templates/"

	BasePath = templates + Base + ".html"

	ErrorPath   = templates + "error.html"
	HomePath    = templates + "home.html"
	LoginPath   = templates + "login.html"
	ProfilePath = templates + "profile.html"
	SignupPath  = templates + "signup.html"
)

const (
	RESTPrefix = "/rest/myzone/1.0"
)

var (
	TemplatePaths = []string{
		ErrorPath,
		HomePath,
		LoginPath,
		ProfilePath,
		SignupPath,
	}

	FuncMap = template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}

	Tmpl = make(map[string]*template.Template)
)

// LoadTemplates parses every page together with the base layout into Tmpl.
func LoadTemplates() error {
	for _, path := range TemplatePaths {
		t, err := template.New(Base).Funcs(FuncMap).ParseFS(templatesFS, path, BasePath)
		if err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
		Tmpl[path] = t
	}
	return nil
}
