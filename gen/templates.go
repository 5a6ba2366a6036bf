package gen

import "text/template"

// fileTemplate is the single template the generator renders once per
// parsed Schema, mirroring xrequest.rs's shape: two structs (request,
// reply) plus a Request trait/interface implementation, repeated for
// every <request>, followed by the event/error/enum/xidtype
// supplements SPEC_FULL.md §4.6 adds.
var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by cmd/x11gen from {{.SourceFile}}. DO NOT EDIT.

package {{.Package}}

import (
{{- if .Enums}}
	"fmt"
{{- end}}

	"github.com/damianoneill/x11/wire"
)

{{range .Requests}}
// {{.StructName}} is the {{.Name}} request.
type {{.StructName}} struct {
{{- range .Fields}}
	{{.Name}} {{.GoType}}
{{- end}}
}

// Size reports the fixed encoded length of {{.StructName}}.
func (r {{.StructName}}) Size() int { return {{.Size}} }

// Encode writes {{.StructName}} into buf starting at byte 4 (bytes
// 0-3 are the opcode/length header the framer stamps).
func (r {{.StructName}}) Encode(buf []byte) int {
{{- range .Fields}}
	{{.PutFunc}}(buf[{{.Offset}}:{{.OffsetEnd}}], {{.EncodeExpr}})
{{- end}}
	return {{.Size}}
}

// Opcode implements proto.Request.
func (r {{.StructName}}) Opcode() uint8 { return {{.Opcode}} }

// Extension implements proto.Request.
func (r {{.StructName}}) Extension() string { return "{{$.Extension}}" }

{{if .HasReply}}
// NewReply implements proto.Request.
func (r {{.StructName}}) NewReply() *{{.ReplyStructName}} { return &{{.ReplyStructName}}{} }

// {{.ReplyStructName}} is {{.Name}}'s reply.
type {{.ReplyStructName}} struct {
{{- range .ReplyFields}}
	{{.Name}} {{.GoType}}
{{- end}}
}

// Decode fills r from a {{.ReplySize}}-byte reply body.
func (r *{{.ReplyStructName}}) Decode(buf []byte, fds []wire.Fd) (int, error) {
	if len(buf) < {{.ReplySize}} {
		return 0, errShortReply("{{.Name}}", {{.ReplySize}}, len(buf))
	}
{{- range .ReplyFields}}
	r.{{.Name}} = {{.GoType}}({{.GetFunc}}(buf[{{.Offset}}:{{.OffsetEnd}}]))
{{- end}}
	return {{.ReplySize}}, nil
}
{{end}}
{{end}}

{{range .Events}}
// {{.StructName}} is the {{.Name}} event.
type {{.StructName}} struct {
{{- range .Fields}}
	{{.Name}} {{.GoType}}
{{- end}}
}

// Decode fills e from a {{.Size}}-byte event frame.
func (e *{{.StructName}}) Decode(buf []byte, fds []wire.Fd) (int, error) {
	if len(buf) < {{.Size}} {
		return 0, errShortReply("{{.Name}}", {{.Size}}, len(buf))
	}
{{- range .Fields}}
	e.{{.Name}} = {{.GoType}}({{.GetFunc}}(buf[{{.Offset}}:{{.OffsetEnd}}]))
{{- end}}
	return {{.Size}}, nil
}
{{end}}

{{if .Events}}
// eventDecoders dispatches a raw event frame to its typed Decode by
// the event code at buf[0], for an upper layer that wants typed event
// values rather than raw bytes (dispatch itself is out of scope here).
var eventDecoders = map[uint8]func(buf []byte, fds []wire.Fd) (interface{}, int, error){
{{- range .Events}}
	{{.Number}}: func(buf []byte, fds []wire.Fd) (interface{}, int, error) {
		var e {{.StructName}}
		n, err := e.Decode(buf, fds)
		return &e, n, err
	},
{{- end}}
}
{{end}}

{{range .Errors}}
// {{.StructName}} is the {{.Name}} error.
type {{.StructName}} struct {
{{- range .Fields}}
	{{.Name}} {{.GoType}}
{{- end}}
}

// Decode fills e from a {{.Size}}-byte error frame.
func (e *{{.StructName}}) Decode(buf []byte, fds []wire.Fd) (int, error) {
	if len(buf) < {{.Size}} {
		return 0, errShortReply("{{.Name}}", {{.Size}}, len(buf))
	}
{{- range .Fields}}
	e.{{.Name}} = {{.GoType}}({{.GetFunc}}(buf[{{.Offset}}:{{.OffsetEnd}}]))
{{- end}}
	return {{.Size}}, nil
}
{{end}}

{{if .Errors}}
// errorDecoders dispatches a raw error frame to its typed Decode by
// the error code at buf[1].
var errorDecoders = map[uint8]func(buf []byte, fds []wire.Fd) (interface{}, int, error){
{{- range .Errors}}
	{{.Number}}: func(buf []byte, fds []wire.Fd) (interface{}, int, error) {
		var e {{.StructName}}
		n, err := e.Decode(buf, fds)
		return &e, n, err
	},
{{- end}}
}
{{end}}

{{range .Enums}}
{{$enumType := .GoName}}
// {{.GoName}} is a generated enum wrapper over uint32.
type {{.GoName}} uint32

const (
{{- range .Items}}
	{{.ConstName}} {{$enumType}} = {{.Value}}
{{- end}}
)

// String names {{.GoName}}'s value, falling back to its numeric form
// for anything outside the named set.
func (v {{.GoName}}) String() string {
	switch v {
{{- range .Items}}
	case {{.ConstName}}:
		return "{{.ItemName}}"
{{- end}}
	default:
		return fmt.Sprintf("{{.GoName}}(%d)", uint32(v))
	}
}
{{end}}

{{range .XidTypes}}
// {{.GoName}} is a generated X11 resource id type.
type {{.GoName}} uint32
{{end}}
`))
