package appidentityassets

import _ "embed"

// YAML is the embedded copy of the application identity manifest, mirrored
// into a Go-embeddable location for standalone binary behavior.
//
//go:embed app.yaml
var YAML []byte
