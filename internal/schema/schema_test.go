package schema

import "testing"

func TestTableSize(t *testing.T) {
	if NumAttributes != 57 {
		t.Fatalf("attribute table has %d entries, want 57", NumAttributes)
	}
}

func TestAttrOffsets(t *testing.T) {
	// Spot-check wire offsets against the format definition.
	checks := map[string]int64{
		"satellite_id":            0,
		"projection_type":         6,
		"resolution":              16,
		"grid_ioffset":            30,
		"composite_type":          42,
		"calibration_type":        44,
		"channel_number":          48,
		"data_id":                 50,
		"channel_pixel_size":      62,
		"compression_type":        78,
		"horizontal_shift":        84,
		"vertical_shift":          86,
		"orbit_type":              100,
		"orbit_end_millisecond":   134,
		"nonlinearity_correction": 56,
	}
	for name, want := range checks {
		id, ok := AttrID(name)
		if !ok {
			t.Errorf("attribute %q not found", name)
			continue
		}
		if got := Attributes[id].Offset; got != want {
			t.Errorf("%s offset = %d, want %d", name, got, want)
		}
	}
	if _, ok := AttrID("no_such_attribute"); ok {
		t.Error("AttrID accepted an unknown name")
	}
}

func TestDimensionTable(t *testing.T) {
	if Dimensions[DimRows].Name != "rows" || Dimensions[DimRows].Offset != 34 {
		t.Errorf("rows dimension = %+v", Dimensions[DimRows])
	}
	if Dimensions[DimColumns].Name != "columns" || Dimensions[DimColumns].Offset != 36 {
		t.Errorf("columns dimension = %+v", Dimensions[DimColumns])
	}
	if id, ok := DimID("columns"); !ok || id != DimColumns {
		t.Errorf("DimID(columns) = %d, %v", id, ok)
	}
}

func TestCodeLookups(t *testing.T) {
	id, _ := AttrID("composite_type")
	att := &Attributes[id]
	code, ok := att.CodeFor("average")
	if !ok || code != 2 {
		t.Errorf("composite_type average = %d, %v; want 2, true", code, ok)
	}
	name, ok := att.NameFor(5)
	if !ok || name != "coldest" {
		t.Errorf("composite_type code 5 = %q, %v; want coldest", name, ok)
	}
	if _, ok := att.CodeFor("bogus"); ok {
		t.Error("CodeFor accepted an unknown name")
	}
	if _, ok := att.NameFor(99); ok {
		t.Error("NameFor accepted an unknown code")
	}

	id, _ = AttrID("satellite_id")
	att = &Attributes[id]
	if code, ok := att.CodeFor("noaa-14"); !ok || code != -10799 {
		t.Errorf("satellite_id noaa-14 = %d, want -10799", code)
	}
}

func TestClassForChannel(t *testing.T) {
	cases := []struct {
		channel int16
		class   int16
		xtype   Type
		ok      bool
	}{
		{ChannelAVHRR1, DataVisible, Float, true},
		{ChannelTurbidity, DataVisible, Float, true},
		{ChannelAVHRR4, DataInfrared, Float, true},
		{ChannelNLSSTTriple, DataInfrared, Float, true},
		{ChannelScanTime, DataAncillary, Float, true},
		{ChannelCloud, DataCloud, Byte, true},
		// sst_multi is in the code table but has no class mapping.
		{ChannelSSTMulti, 0, 0, false},
		{999, 0, 0, false},
	}
	for _, c := range cases {
		class, xtype, ok := ClassForChannel(c.channel)
		if class != c.class || xtype != c.xtype || ok != c.ok {
			t.Errorf("ClassForChannel(%d) = %d, %d, %v; want %d, %d, %v",
				c.channel, class, xtype, ok, c.class, c.xtype, c.ok)
		}
	}
}
