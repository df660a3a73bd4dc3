package config

import (
	"embed"
)

// FileName is the name of the project-local configuration file.
const FileName = "svgico.yaml"

//go:embed svgico.yaml
var embeddedFiles embed.FS

// Defaults returns the built-in configuration that every loaded config is
// layered on top of.
func Defaults() ([]byte, error) {
	return embeddedFiles.ReadFile(FileName)
}
