package lispy

// Version is reported by `lispy version` and the REPL banner.
const Version = "0.1.0"

// BuildDate may be overridden at link time.
var BuildDate = "unknown"
