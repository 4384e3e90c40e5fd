package theme

import _ "embed"

//go:embed themes.yaml
var themesYAML []byte
