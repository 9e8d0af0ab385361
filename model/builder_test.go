package model

import (
	"bytes"
	"log"
	"testing"

	"github.com/google/go-cmp/cmp"

	"omibyte.io/mmiogen/header"
)

type testOverrides struct {
	structs   map[string][]StructField
	registers map[string][]RegisterField
	docs      map[string]string
}

func (o testOverrides) StructFields(name string) []StructField     { return o.structs[name] }
func (o testOverrides) RegisterFields(name string) []RegisterField { return o.registers[name] }
func (o testOverrides) Doc(name string) string                     { return o.docs[name] }

func offset(line int, name string, index uint64) header.Event {
	return header.Event{Kind: header.OffsetEvent, Line: line, Name: name, Offset: index}
}

func bits(line int, name string, start, end uint) header.Event {
	return header.Event{Kind: header.BitFieldEvent, Line: line, Name: name, Start: start, End: end}
}

func TestBuilder(t *testing.T) {
	tests := []struct {
		name      string
		structure string
		prefix    string
		overrides Overrides
		events    []header.Event
		expected  *Struct
	}{
		{
			name:      "structField",
			structure: "Foo",
			prefix:    "FOO_",
			events:    []header.Event{offset(1, "FOO_BAR", 4)},
			expected: &Struct{
				Name:      "Foo",
				Doc:       "doc",
				Fields:    []StructField{{Index: 4, Name: "bar", Type: "FooBar"}},
				Registers: []*Register{{Name: "FooBar"}},
			},
		},
		{
			name:      "bitFields",
			structure: "Foo",
			prefix:    "FOO_",
			events: []header.Event{
				offset(1, "FOO_BAR", 4),
				bits(2, "FOO_REG_BAZ", 0, 4),
				bits(3, "FOO_QUX", 4, 5),
			},
			expected: &Struct{
				Name:   "Foo",
				Doc:    "doc",
				Fields: []StructField{{Index: 4, Name: "bar", Type: "FooBar"}},
				Registers: []*Register{{
					Name:   "FooBar",
					Fields: []RegisterField{{Start: 0, End: 4, Name: "baz"}, {Start: 4, End: 5, Name: "qux"}},
				}},
			},
		},
		{
			name:      "sortedByIndex",
			structure: "Foo",
			prefix:    "FOO_",
			events: []header.Event{
				offset(1, "FOO_C", 8),
				offset(2, "FOO_A", 0),
				offset(3, "FOO_B", 4),
			},
			expected: &Struct{
				Name: "Foo",
				Doc:  "doc",
				Fields: []StructField{
					{Index: 0, Name: "a", Type: "FooA"},
					{Index: 4, Name: "b", Type: "FooB"},
					{Index: 8, Name: "c", Type: "FooC"},
				},
				Registers: []*Register{{Name: "FooC"}, {Name: "FooA"}, {Name: "FooB"}},
			},
		},
		{
			name:      "bitFieldWithoutRegister",
			structure: "Foo",
			prefix:    "FOO_",
			events:    []header.Event{bits(1, "FOO_X", 0, 1)},
			expected:  &Struct{Name: "Foo", Doc: "doc"},
		},
		{
			name:      "structOverride",
			structure: "Pds",
			prefix:    "PDS_",
			overrides: testOverrides{
				structs: map[string][]StructField{
					"Pds": {{Index: 0x130, Name: "cpu_mtimer_rtc", Type: "super::CpuRtc", Doc: "Alias for `cpu_core_cfg8`."}},
					"Hbn": {{Index: 0, Name: "unused", Type: "Unused"}},
				},
			},
			events: []header.Event{
				offset(1, "PDS_CPU_CORE_CFG7", 0x12C),
				offset(2, "PDS_CPU_CORE_CFG8", 0x130),
				offset(3, "PDS_CPU_CORE_CFG9", 0x134),
			},
			expected: &Struct{
				Name: "Pds",
				Doc:  "doc",
				Fields: []StructField{
					{Index: 0x12C, Name: "cpu_core_cfg7", Type: "PdsCpuCoreCfg7"},
					{Index: 0x130, Name: "cpu_mtimer_rtc", Type: "super::CpuRtc", Doc: "Alias for `cpu_core_cfg8`."},
					{Index: 0x130, Name: "cpu_core_cfg8", Type: "PdsCpuCoreCfg8"},
					{Index: 0x134, Name: "cpu_core_cfg9", Type: "PdsCpuCoreCfg9"},
				},
				Registers: []*Register{{Name: "PdsCpuCoreCfg7"}, {Name: "PdsCpuCoreCfg8"}, {Name: "PdsCpuCoreCfg9"}},
			},
		},
		{
			name:      "registerOverrideAndDocs",
			structure: "Hbn",
			prefix:    "HBN_",
			overrides: testOverrides{
				registers: map[string][]RegisterField{
					"HbnGlb": {{Start: 0, End: 1, Name: "xclk_sel", Doc: "Alias for `root_clk_sel & 1`."}},
				},
				docs: map[string]string{"uart_clk_sel": "UART clock selection."},
			},
			events: []header.Event{
				offset(1, "HBN_GLB", 0x30),
				bits(2, "HBN_ROOT_CLK_SEL", 0, 2),
				bits(3, "HBN_UART_CLK_SEL", 2, 3),
			},
			expected: &Struct{
				Name:   "Hbn",
				Doc:    "doc",
				Fields: []StructField{{Index: 0x30, Name: "glb", Type: "HbnGlb"}},
				Registers: []*Register{{
					Name: "HbnGlb",
					Fields: []RegisterField{
						{Start: 0, End: 1, Name: "xclk_sel", Doc: "Alias for `root_clk_sel & 1`."},
						{Start: 0, End: 2, Name: "root_clk_sel"},
						{Start: 2, End: 3, Name: "uart_clk_sel", Doc: "UART clock selection."},
					},
				}},
			},
		},
		{
			name:      "typeNamedLikeStruct",
			structure: "Cci",
			prefix:    "CCI_",
			events:    []header.Event{offset(1, "CCI", 0)},
			expected: &Struct{
				Name:      "Cci",
				Doc:       "doc",
				Fields:    []StructField{{Index: 0, Name: "cci", Type: "Cci0"}},
				Registers: []*Register{{Name: "Cci0"}},
			},
		},
		{
			name:      "redeclaredType",
			structure: "Foo",
			prefix:    "FOO_",
			events: []header.Event{
				offset(1, "FOO_A", 0),
				bits(2, "FOO_OLD", 0, 1),
				offset(3, "FOO_B", 4),
				offset(4, "FOO_A", 8),
				bits(5, "FOO_NEW", 1, 2),
			},
			expected: &Struct{
				Name: "Foo",
				Doc:  "doc",
				Fields: []StructField{
					{Index: 0, Name: "a", Type: "FooA"},
					{Index: 4, Name: "b", Type: "FooB"},
					{Index: 8, Name: "a", Type: "FooA"},
				},
				Registers: []*Register{
					{Name: "FooA", Fields: []RegisterField{{Start: 1, End: 2, Name: "new"}}},
					{Name: "FooB"},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(tc.structure, tc.prefix, tc.overrides, nil)
			for _, ev := range tc.events {
				b.Handle(ev)
			}
			got := b.Finish("doc")
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Finish() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilderDoesNotAliasOverrides(t *testing.T) {
	o := testOverrides{
		structs:   map[string][]StructField{"Foo": {{Index: 8, Name: "z", Type: "Z"}}},
		registers: map[string][]RegisterField{"FooA": {{Start: 0, End: 1, Name: "x"}}},
	}
	for i := 0; i < 2; i++ {
		b := NewBuilder("Foo", "FOO_", o, nil)
		b.Handle(offset(1, "FOO_A", 0))
		b.Handle(bits(2, "FOO_Y", 1, 2))
		b.Finish("")
	}
	if len(o.structs["Foo"]) != 1 || len(o.registers["FooA"]) != 1 {
		t.Errorf("override tables were modified: %+v", o)
	}
	if o.structs["Foo"][0].Index != 8 {
		t.Errorf("override struct fields were reordered: %+v", o.structs["Foo"])
	}
}

func TestBuilderLogsRedeclaration(t *testing.T) {
	var buf bytes.Buffer
	b := NewBuilder("Foo", "FOO_", nil, log.New(&buf, "", 0))
	b.Handle(offset(3, "FOO_A", 0))
	b.Handle(offset(7, "FOO_A", 4))
	if expected := "line 7: register FooA redeclared, replacing its bit fields\n"; buf.String() != expected {
		t.Errorf("expected log %q, got %q", expected, buf.String())
	}
}
