package template

import (
	"embed"
	"fmt"
)

//go:embed apache/*.tmpl
var apacheTemplates embed.FS

// getTemplateFS returns the embed.FS for the given server
func getTemplateFS(server string) (embed.FS, error) {
	switch server {
	case "apache":
		return apacheTemplates, nil
	default:
		return embed.FS{}, fmt.Errorf("unknown server: %s", server)
	}
}
