package runner

import "time"

const (
	defaultInterval   = time.Second
	defaultBackoff    = 5 * time.Second
	defaultMaxBackoff = time.Minute

	unlockTimeout = 5 * time.Second
)
