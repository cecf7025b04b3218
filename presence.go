package genval

// Presence is the bit flag recorded per JSON Pointer while reconstructing a
// streaming response. A pointer absent from the map is "unknown": no value
// has been observed yet, which is distinct from a property known to be null.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // A decoded value has been observed.
	PresenceWasNull                      // The observed value was explicit null.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Seen reports whether a decoded value has been observed at the pointer.
func (pm PresenceMap) Seen(path string) bool { return pm[path]&PresenceSeen != 0 }

// WasNull reports whether the observed value at the pointer was null.
func (pm PresenceMap) WasNull(path string) bool { return pm[path]&PresenceWasNull != 0 }

// RebasePresence prefixes every pointer in pm with the given segment, used
// when a nested partial decode is folded into its parent.
func RebasePresence(prefix string, pm PresenceMap) PresenceMap {
	if len(pm) == 0 {
		return nil
	}
	out := make(PresenceMap, len(pm))
	for k, v := range pm {
		if k == "/" {
			out[prefix] = v
			continue
		}
		out[prefix+k] = v
	}
	return out
}
