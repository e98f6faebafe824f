package postgres

import "github.com/tinoosan/costapi/internal/service/budget"

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ budget.Repo   = (*Store)(nil)
	_ budget.Writer = (*Store)(nil)
)
