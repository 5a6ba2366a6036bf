// Package gen implements the XML-schema-driven code generator: it
// reads the X11 protocol XML description (the same family of files
// xcb-proto ships) and emits one Go source file per <xcb> root
// containing typed request/reply/event/error/enum/xidtype bindings.
//
// The walking strategy mirrors
// original_source/generator/src/xrequest.rs's treexml::Element
// traversal, adapted to Go's encoding/xml tree model.
package gen

import "encoding/xml"

// Schema is the root <xcb> element of one X11 protocol XML file.
type Schema struct {
	XMLName  xml.Name  `xml:"xcb"`
	Header   string    `xml:"header,attr"`
	Extension string   `xml:"extension-name,attr"`
	Requests []Request `xml:"request"`
	Events   []Event   `xml:"event"`
	Errors   []Error   `xml:"error"`
	Enums    []Enum    `xml:"enum"`
	XidTypes []XidType `xml:"xidtype"`
}

// Request is one <request> element: a name, an opcode, a flat list of
// fields, and an optional nested <reply>.
type Request struct {
	Name   string  `xml:"name,attr"`
	Opcode int     `xml:"opcode,attr"`
	Fields []Field `xml:"field"`
	Pads   []Pad   `xml:"pad"`
	Lists  []List  `xml:"list"`
	Reply  *Reply  `xml:"reply"`
}

// Reply is a <request>'s nested <reply> element.
type Reply struct {
	Fields []Field `xml:"field"`
	Pads   []Pad   `xml:"pad"`
	Lists  []List  `xml:"list"`
}

// Event is a top-level <event> element, carrying its own numeric code
// and field list. Kept per SPEC_FULL.md §4.6's supplement beyond
// spec.md's request/reply-only scope.
type Event struct {
	Name   string  `xml:"name,attr"`
	Number int     `xml:"number,attr"`
	Fields []Field `xml:"field"`
	Pads   []Pad   `xml:"pad"`
}

// Error is a top-level <error> element.
type Error struct {
	Name   string  `xml:"name,attr"`
	Number int     `xml:"number,attr"`
	Fields []Field `xml:"field"`
	Pads   []Pad   `xml:"pad"`
}

// Enum is a named set of integer constants, e.g. <enum name="RevertTo">.
type Enum struct {
	Name  string     `xml:"name,attr"`
	Items []EnumItem `xml:"item"`
}

// EnumItem is one <item name="...">...<value>N</value></item> member.
type EnumItem struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
	Bit   string `xml:"bit"`
}

// XidType declares a 32-bit resource id type, e.g. <xidtype name="WINDOW"/>.
type XidType struct {
	Name string `xml:"name,attr"`
}

// Field is a single fixed-width scalar field, e.g.
// <field name="depth" type="CARD8"/>.
type Field struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// Pad is an explicit padding/alignment gap, e.g. <pad bytes="2"/>.
type Pad struct {
	Bytes int `xml:"bytes,attr"`
}

// List is a variable-length trailing field, e.g.
// <list name="properties" type="CARD32"/>. Lists are parsed but not
// emitted: the generator produces no struct field and no encode or
// decode step for them.
type List struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}
