package v1

import (
	"github.com/tinoosan/costapi/internal/storage/memory"
	"github.com/tinoosan/costapi/internal/storage/postgres"
)

// Compile-time interface assertions for the stores against the HTTP API interfaces.
var (
	_ Repository = (*memory.Store)(nil)
	_ Repository = (*postgres.Store)(nil)
)
