// version.go
package fyfth

// Version is the engine version reported by the CLI and the REPL banner.
const Version = "0.2.0"

// BuildDate can be overridden at link time with -ldflags "-X ...".
var BuildDate = "unknown"
