package engine

import "github.com/google/uuid"

// HandID identifies a single hand within a table, used for log correlation.
type HandID string

func NewHandID() HandID { return HandID(uuid.NewString()) }
