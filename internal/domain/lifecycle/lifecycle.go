// Package lifecycle holds process lifecycle constants shared by fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work such as pinging the
// database or draining the HTTP server.
const DefaultTimeout = 10 * time.Second
