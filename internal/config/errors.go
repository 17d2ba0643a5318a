package config

import "errors"

// ErrMissingConfig marks a required configuration value that is absent or
// invalid. Callers match it with errors.Is; the wrapped message names the
// offending field.
var ErrMissingConfig = errors.New("missing configuration")
