package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values. Logger
// stays nil until configuration is loaded, callers must check.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}
