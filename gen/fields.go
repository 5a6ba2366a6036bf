package gen

import "strings"

// goField is a Field/List resolved against the scalar type table, with
// enough information for the struct/codec templates to emit a Go
// struct field and its Encode/Decode statements.
type goField struct {
	Name     string
	GoType   string
	WireSize int
	GetFunc  string // wire.GetUint8/16/32
	PutFunc  string // wire.PutUint8/16/32
	IsList   bool
}

// scalarType describes one of the X11 XML schema's built-in scalar
// type names.
type scalarType struct {
	goType string
	size   int
	get    string
	put    string
}

// coreScalars covers the fixed-width scalar types the X11 XML schema
// uses directly; XID types (WINDOW, ATOM, ...) resolve to CARD32's
// entry unless the generator has already emitted a named wrapper for
// them (see Generate's xidtype handling), in which case the named
// type is substituted but the wire shape is identical.
var coreScalars = map[string]scalarType{
	"CARD8":  {"uint8", 1, "wire.GetUint8", "wire.PutUint8"},
	"BYTE":   {"byte", 1, "wire.GetUint8", "wire.PutUint8"},
	"BOOL":   {"bool", 1, "wire.GetBool", "wire.PutBool"},
	"INT8":   {"int8", 1, "wire.GetUint8", "wire.PutUint8"},
	"CARD16": {"uint16", 2, "wire.GetUint16", "wire.PutUint16"},
	"INT16":  {"int16", 2, "wire.GetUint16", "wire.PutUint16"},
	"CARD32": {"uint32", 4, "wire.GetUint32", "wire.PutUint32"},
	"INT32":  {"int32", 4, "wire.GetUint32", "wire.PutUint32"},
}

// resolveField converts an XML type name to a goField, falling back
// to CARD32's shape for any unrecognised name (XID types, extension
// enums referenced by name) since every X11 scalar still on the wire
// is some multiple of a byte/half/word.
func resolveField(name, xmlType string, namedTypes map[string]bool) goField {
	if s, ok := coreScalars[strings.ToUpper(xmlType)]; ok {
		return goField{Name: name, GoType: s.goType, WireSize: s.size, GetFunc: s.get, PutFunc: s.put}
	}
	if namedTypes[xmlType] {
		return goField{Name: name, GoType: xmlType, WireSize: 4, GetFunc: "wire.GetUint32", PutFunc: "wire.PutUint32"}
	}
	// Unknown scalar: treat as an opaque 32-bit value, the common case
	// for XID-shaped references the schema hasn't declared locally.
	return goField{Name: name, GoType: "uint32", WireSize: 4, GetFunc: "wire.GetUint32", PutFunc: "wire.PutUint32"}
}
