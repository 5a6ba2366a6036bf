package client

// extensionKeyLen is the fixed width of the extension-name key the
// registry indexes on, matching breadx's string_as_array_bytes: names
// longer than this are truncated, shorter ones zero-padded, so two
// extensions sharing a 24-byte prefix would collide. Real X11
// extension names are all well under this, so spec.md accepts the risk
// rather than mitigating it (see DESIGN.md's Open Question decisions).
const extensionKeyLen = 24

// extensionKey truncates or zero-pads name to extensionKeyLen bytes.
func extensionKey(name string) [extensionKeyLen]byte {
	var key [extensionKeyLen]byte
	copy(key[:], name)
	return key
}

// extensionInfo is what the registry caches per extension once
// QueryExtension has resolved it: the major opcode needed to frame
// requests, plus the first event/error codes a caller may want for its
// own dispatch (spec.md's Open Question, kept per SPEC_FULL.md §6).
type extensionInfo struct {
	present     bool
	majorOpcode uint8
	firstEvent  uint8
	firstError  uint8
}

// ExtensionInfo is the public view of extensionInfo returned by
// Display.ExtensionInfo.
type ExtensionInfo struct {
	Present     bool
	MajorOpcode uint8
	FirstEvent  uint8
	FirstError  uint8
}

// extensionRegistry caches QueryExtension results by extension name so
// a connection only ever asks the server about a given extension once,
// per spec.md §4.3.
type extensionRegistry struct {
	byKey map[[extensionKeyLen]byte]extensionInfo
}

func newExtensionRegistry() *extensionRegistry {
	return &extensionRegistry{byKey: make(map[[extensionKeyLen]byte]extensionInfo)}
}

// lookup returns the cached entry for name, if resolved already.
func (r *extensionRegistry) lookup(name string) (extensionInfo, bool) {
	info, ok := r.byKey[extensionKey(name)]
	return info, ok
}

// store records the resolution for name, so later requests against the
// same extension skip the QueryExtension round trip entirely.
func (r *extensionRegistry) store(name string, info extensionInfo) {
	r.byKey[extensionKey(name)] = info
}
