// internal/data/embed.go
// Package data carries the compiled-in rule catalog. The catalog service
// prefers files under DATA_DIR when they exist and falls back to these
// embedded defaults, so the binary runs without any external data directory.
package data

import _ "embed"

//go:embed categories.yaml
var Categories []byte

//go:embed transformation_maps.yaml
var TransformationMaps []byte

//go:embed templates.yaml
var Templates []byte
