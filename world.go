// world.go
//
// The host-collaborator boundary. The engine never inspects host objects
// directly: it holds opaque EntityID handles and calls through the World
// capability interface, which the host implements. A single World value is
// passed per run and the engine assumes exclusive, non-reentrant access to
// it for the duration of the call.
package fyfth

import "strconv"

// EntityID is an opaque handle to a host-managed object. The zero value is
// never a live handle. Equality is handle identity.
type EntityID uint64

func (id EntityID) String() string { return strconv.FormatUint(uint64(id), 10) }

// World is the capability surface the engine consumes. Hosts decide what
// an "entity" is; the engine only enumerates handles, reads names, moves
// component values through codecs, and toggles marker components.
type World interface {
	// Entities enumerates live handles, already filtered of anything the
	// host wants hidden from scripts.
	Entities() []EntityID

	// Name returns the host-assigned display name of a handle, if any.
	Name(id EntityID) (string, bool)

	// Registry exposes the codec table for this world's component types.
	Registry() *Registry

	// Component returns the raw host value stored under key for id.
	Component(id EntityID, key TypeKey) (any, bool)

	// SetComponent stores a raw host value under key for id. A dead
	// handle is an error.
	SetComponent(id EntityID, key TypeKey, v any) error

	// AddMarker / RemoveMarker / Marked manage marker components: bare
	// named tags used by language extensions to flag handles.
	AddMarker(id EntityID, marker string) error
	RemoveMarker(id EntityID, marker string) error
	Marked(marker string) []EntityID
}
