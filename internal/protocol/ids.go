package protocol

import "github.com/google/uuid"

// ConnID identifies a TCP connection for the lifetime of the process.
type ConnID string

// TableID identifies a table room; assigned from static configuration
// (tables.toml), not generated.
type TableID string

// NewConnID returns a fresh random connection id.
func NewConnID() ConnID { return ConnID(uuid.NewString()) }
