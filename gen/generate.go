package gen

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"go/format"
	"strings"

	"github.com/pkg/errors"
)

// fileData is what fileTemplate renders.
type fileData struct {
	SourceFile string
	Package    string
	Extension  string
	Requests   []requestData
	Events     []eventData
	Errors     []errorData
	Enums      []enumData
	XidTypes   []xidTypeData
}

type eventData struct {
	Name       string
	StructName string
	Number     int
	Size       int
	Fields     []fieldData
}

type errorData struct {
	Name       string
	StructName string
	Number     int
	Size       int
	Fields     []fieldData
}

type requestData struct {
	Name            string
	StructName      string
	Opcode          int
	Size            int
	Fields          []fieldData
	HasReply        bool
	ReplyStructName string
	ReplySize       int
	ReplyFields     []fieldData
}

type fieldData struct {
	Name       string
	GoType     string
	GetFunc    string
	PutFunc    string
	Offset     int
	OffsetEnd  int
	EncodeExpr string
}

type enumData struct {
	GoName string
	Items  []enumItemData
}

type enumItemData struct {
	ConstName string
	ItemName  string
	Value     string
}

type xidTypeData struct {
	GoName string
}

// Generate parses an X11 protocol XML document (xml) and renders one
// gofmt'd Go source file implementing it, under the given package
// name. sourceName is used only for the "generated from" header
// comment.
//
// The generated file calls an errShortReply(name string, want, got
// int) error helper it does not define itself, matching
// xproto/errors.go (xproto/glx/errors.go has the same helper under the
// name errShort): every hand-written and generated package in this
// module defines its own copy rather than sharing one across package
// boundaries.
func Generate(xmlDoc []byte, pkgName, sourceName string) ([]byte, error) {
	var schema Schema
	if err := xml.Unmarshal(xmlDoc, &schema); err != nil {
		return nil, errors.Wrap(err, "gen: parsing schema")
	}

	namedTypes := map[string]bool{}
	for _, x := range schema.XidTypes {
		namedTypes[x.Name] = true
	}

	data := fileData{
		SourceFile: sourceName,
		Package:    pkgName,
		Extension:  schema.Extension,
	}

	for _, req := range schema.Requests {
		data.Requests = append(data.Requests, buildRequestData(req, namedTypes))
	}
	for _, ev := range schema.Events {
		data.Events = append(data.Events, buildEventData(ev, namedTypes))
	}
	for _, er := range schema.Errors {
		data.Errors = append(data.Errors, buildErrorData(er, namedTypes))
	}
	for _, enum := range schema.Enums {
		data.Enums = append(data.Enums, buildEnumData(enum))
	}
	for _, x := range schema.XidTypes {
		data.XidTypes = append(data.XidTypes, xidTypeData{GoName: exportName(x.Name)})
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "gen: executing template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Surface the unformatted source alongside the error: it is
		// far easier to spot a template bug in raw output than in a
		// gofmt parse-error message alone.
		return buf.Bytes(), errors.Wrap(err, "gen: formatting generated source")
	}
	return formatted, nil
}

// buildRequestData lays out a request's (and its reply's, if any)
// fixed-width fields at increasing byte offsets, starting at 4 (past
// the opcode/length header every request carries) for the request and
// at 8 (past the 1-byte reply marker, 1-byte pad, 2-byte sequence
// number and 4-byte reply length every reply carries) for the reply.
//
// Trailing <list> fields are not laid out here: their length depends
// on the request/reply's own length field, which is runtime data, not
// something a fixed-offset table can express. A schema whose request
// or reply has any <list> children gets its fixed fields up to that
// point and nothing past it; wiring list decoding is left to a
// hand-written Decode override, the same escape hatch
// xproto/glx/glx.go uses for GetFBConfigs' config list.
func buildRequestData(req Request, namedTypes map[string]bool) requestData {
	rd := requestData{
		Name:       req.Name,
		StructName: req.Name + "Request",
		Opcode:     req.Opcode,
	}

	offset := 4
	for _, f := range req.Fields {
		gf := resolveField(f.Name, f.Type, namedTypes)
		rd.Fields = append(rd.Fields, fieldData{
			Name:       exportName(gf.Name),
			GoType:     gf.GoType,
			PutFunc:    gf.PutFunc,
			Offset:     offset,
			OffsetEnd:  offset + gf.WireSize,
			EncodeExpr: encodeExpr(gf),
		})
		offset += gf.WireSize
	}
	for _, p := range req.Pads {
		offset += p.Bytes
	}
	rd.Size = offset

	if req.Reply != nil {
		rd.HasReply = true
		rd.ReplyStructName = req.Name + "Reply"

		roffset := 8
		for _, f := range req.Reply.Fields {
			gf := resolveField(f.Name, f.Type, namedTypes)
			rd.ReplyFields = append(rd.ReplyFields, fieldData{
				Name:      exportName(gf.Name),
				GoType:    gf.GoType,
				GetFunc:   gf.GetFunc,
				Offset:    roffset,
				OffsetEnd: roffset + gf.WireSize,
			})
			roffset += gf.WireSize
		}
		if roffset < 32 {
			roffset = 32 // every reply is at least 32 bytes, padded.
		}
		rd.ReplySize = roffset
	}

	return rd
}

// buildEventData and buildErrorData lay out an event's or error's
// fixed fields starting at byte 4 (past the 1-byte code, 1-byte
// detail/error-code byte and 2-byte sequence number every core event
// and error frame carries), matching the 32-byte fixed frame both
// share on the wire.
func buildEventData(ev Event, namedTypes map[string]bool) eventData {
	ed := eventData{Name: ev.Name, StructName: ev.Name + "Event", Number: ev.Number}
	offset := 4
	for _, f := range ev.Fields {
		gf := resolveField(f.Name, f.Type, namedTypes)
		ed.Fields = append(ed.Fields, fieldData{
			Name:      exportName(gf.Name),
			GoType:    gf.GoType,
			GetFunc:   gf.GetFunc,
			Offset:    offset,
			OffsetEnd: offset + gf.WireSize,
		})
		offset += gf.WireSize
	}
	ed.Size = 32
	return ed
}

func buildErrorData(er Error, namedTypes map[string]bool) errorData {
	ed := errorData{Name: er.Name, StructName: er.Name + "Error", Number: er.Number}
	offset := 4
	for _, f := range er.Fields {
		gf := resolveField(f.Name, f.Type, namedTypes)
		ed.Fields = append(ed.Fields, fieldData{
			Name:      exportName(gf.Name),
			GoType:    gf.GoType,
			GetFunc:   gf.GetFunc,
			Offset:    offset,
			OffsetEnd: offset + gf.WireSize,
		})
		offset += gf.WireSize
	}
	ed.Size = 32
	return ed
}

func buildEnumData(enum Enum) enumData {
	ed := enumData{GoName: exportName(enum.Name)}
	for _, item := range enum.Items {
		value := item.Value
		if value == "" {
			value = item.Bit
		}
		ed.Items = append(ed.Items, enumItemData{
			ConstName: ed.GoName + exportName(item.Name),
			ItemName:  item.Name,
			Value:     value,
		})
	}
	return ed
}

func encodeExpr(gf goField) string {
	if gf.GoType == "bool" {
		return fmt.Sprintf("r.%s", exportName(gf.Name))
	}
	return fmt.Sprintf("uint%d(r.%s)", gf.WireSize*8, exportName(gf.Name))
}

// exportName title-cases an XML identifier's first letter so it is a
// valid exported Go field/type name, leaving the rest of the name
// untouched (the X11 schema already uses CamelCase for multi-word
// names).
func exportName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
