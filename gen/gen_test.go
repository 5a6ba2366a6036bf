package gen

import (
	"strings"
	"testing"
)

const sampleSchema = `<?xml version="1.0"?>
<xcb header="sample" extension-name="Sample">
  <request name="GetWidget" opcode="7">
    <field name="target" type="CARD32" />
    <field name="flags" type="CARD16" />
    <pad bytes="2" />
    <reply>
      <field name="present" type="BOOL" />
      <field name="count" type="CARD32" />
    </reply>
  </request>
  <event name="WidgetMoved" number="64">
    <field name="widget" type="CARD32" />
  </event>
  <error name="WidgetBusy" number="16">
    <field name="widget" type="CARD32" />
  </error>
  <enum name="WidgetKind">
    <item name="Button"><value>0</value></item>
    <item name="Slider"><value>1</value></item>
  </enum>
  <xidtype name="Widget" />
</xcb>`

func TestGenerateProducesCompilableShapedSource(t *testing.T) {
	out, err := Generate([]byte(sampleSchema), "sample", "sample.xml")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	src := string(out)

	for _, want := range []string{
		"package sample",
		"type GetWidgetRequest struct",
		"Target uint32",
		"Flags",
		"uint16",
		"func (r GetWidgetRequest) Opcode() uint8 { return 7 }",
		`func (r GetWidgetRequest) Extension() string { return "Sample" }`,
		"type GetWidgetReply struct",
		"Present bool",
		"Count",
		"func (r *GetWidgetReply) Decode(buf []byte, fds []wire.Fd) (int, error)",
		"type WidgetKind uint32",
		"WidgetKindButton WidgetKind = 0",
		"WidgetKindSlider WidgetKind = 1",
		"func (v WidgetKind) String() string",
		`return "Button"`,
		"type Widget uint32",
		"type WidgetMovedEvent struct",
		"func (e *WidgetMovedEvent) Decode(buf []byte, fds []wire.Fd) (int, error)",
		"var eventDecoders = map[uint8]func(buf []byte, fds []wire.Fd) (interface{}, int, error){",
		"64: func(buf []byte, fds []wire.Fd) (interface{}, int, error) {",
		"type WidgetBusyError struct",
		"func (e *WidgetBusyError) Decode(buf []byte, fds []wire.Fd) (int, error)",
		"var errorDecoders = map[uint8]func(buf []byte, fds []wire.Fd) (interface{}, int, error){",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q\n---\n%s", want, src)
		}
	}
}

func TestGenerateRejectsMalformedXML(t *testing.T) {
	_, err := Generate([]byte("<xcb"), "sample", "bad.xml")
	if err == nil {
		t.Fatal("expected an error parsing malformed XML")
	}
}

func TestResolveFieldFallsBackToCard32Shape(t *testing.T) {
	gf := resolveField("owner", "WINDOW", map[string]bool{})
	if gf.GoType != "uint32" || gf.WireSize != 4 {
		t.Fatalf("resolveField(WINDOW) = %+v, want uint32/4", gf)
	}

	gf = resolveField("owner", "Widget", map[string]bool{"Widget": true})
	if gf.GoType != "Widget" || gf.WireSize != 4 {
		t.Fatalf("resolveField(named xidtype) = %+v, want GoType Widget/4", gf)
	}
}
