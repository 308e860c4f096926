// Package uuid provides run identifier generation.
package uuid

import "github.com/google/uuid"

// Generator produces random run IDs.
type Generator struct{}

// New creates a Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a random UUID.
func (Generator) NewID() uuid.UUID {
	return uuid.New()
}
