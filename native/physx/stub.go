//go:build !physx

// Package physx binds the native collaborator interfaces to the PhysX SDK.
// When the "physx" build tag is not set, this stub is compiled instead and
// New returns an error.
//
// Build with: go build -tags=physx
package physx

import (
	"errors"

	"github.com/wippyai/physx-binding/native"
)

// New returns an error indicating PhysX is not available.
// Build with -tags=physx to enable.
func New() (native.Backend, error) {
	return nil, errors.New("physx backend not available: build with -tags=physx")
}
