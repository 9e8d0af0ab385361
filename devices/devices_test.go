package devices

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAll(t *testing.T) {
	expected := []string{
		"mcu_misc", "mm_misc", "mm_glb", "hbn", "glb", "pds",
		"cci", "sf_ctrl", "aon", "dtsrc", "dsp2_misc",
	}
	if diff := cmp.Diff(expected, All().IDs()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	for _, dev := range All() {
		if dev.Header == "" || dev.Name == "" || dev.Prefix == "" {
			t.Errorf("device %s is incomplete: %+v", dev.ID, dev)
		}
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected Device
		err      error
	}{
		{
			name: "pds",
			id:   "pds",
			expected: Device{
				ID:     "pds",
				Header: "https://raw.githubusercontent.com/bouffalolab/bouffalo_sdk/master/drivers/soc/bl808/std/include/hardware/pds_reg.h",
				Name:   "Pds",
				Prefix: "PDS_",
				Doc:    "Power Down Sleep register.",
			},
		},
		{
			name: "case",
			id:   "SF_CTRL",
			expected: Device{
				ID:     "sf_ctrl",
				Header: "https://raw.githubusercontent.com/bouffalolab/bouffalo_sdk/master/drivers/soc/bl808/std/include/hardware/sf_ctrl_reg.h",
				Name:   "SfCtrl",
				Prefix: "SF_CTRL_",
				Doc:    "Serial Flash.",
			},
		},
		{
			name: "empty doc",
			id:   "cci",
			expected: Device{
				ID:     "cci",
				Header: "https://raw.githubusercontent.com/bouffalolab/bouffalo_sdk/master/drivers/soc/bl808/std/include/hardware/cci_reg.h",
				Name:   "Cci",
				Prefix: "CCI_",
			},
		},
		{
			name: "unknown",
			id:   "vdo",
			err:  ErrDeviceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, err := Find(tt.id)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Find() error = %v, want %v", err, tt.err)
			}
			if diff := cmp.Diff(tt.expected, dev); diff != "" {
				t.Errorf("Find() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	devs, err := All().Select("hbn", "glb")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"hbn", "glb"}, devs.IDs()); diff != "" {
		t.Errorf("Select() mismatch (-want +got):\n%s", diff)
	}

	devs, err = All().Select()
	if err != nil {
		t.Fatal(err)
	}
	if len(devs) != len(All()) {
		t.Errorf("Select() returned %d devices, want %d", len(devs), len(All()))
	}

	if _, err := All().Select("hbn", "vdo", "csi"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Select() error = %v, want %v", err, ErrDeviceNotFound)
	}
}

func TestOverrides(t *testing.T) {
	set := Overrides()

	fields := set.StructFields("Glb")
	if len(fields) != 6 {
		t.Fatalf("StructFields(Glb) returned %d fields, want 6", len(fields))
	}
	if fields[4].Index != 0x7D0 || fields[4].Name != "uhs_pll_cfg0_" || fields[4].Type != "super::PllCfg0" {
		t.Errorf("unexpected field %+v", fields[4])
	}

	regs := set.RegisterFields("GlbHwRsv1")
	if len(regs) != 2 || regs[1].Start != 31 || regs[1].End != 32 {
		t.Errorf("RegisterFields(GlbHwRsv1) = %+v", regs)
	}

	if doc := set.Doc("cl_enable"); doc != "Enable clock lane." {
		t.Errorf("Doc(cl_enable) = %q", doc)
	}

	// Every structure with overrides is a known device.
	for name := range set.Structs {
		found := false
		for _, dev := range All() {
			if dev.Name == name {
				found = true
			}
		}
		if !found {
			t.Errorf("overrides for unknown structure %s", name)
		}
	}
}
