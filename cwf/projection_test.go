package cwf

import (
	"math"
	"testing"
)

func projDataset(t *testing.T) *File {
	t.Helper()
	f, _ := newDataset(t, "mcsst", Float, 2, 80)
	t.Cleanup(func() { f.Close() })
	return f
}

func putText(t *testing.T, f *File, name, value string) {
	t.Helper()
	if err := f.PutAttText(DataVar, name, value); err != nil {
		t.Fatal(err)
	}
}

func putShort(t *testing.T, f *File, name string, value int16) {
	t.Helper()
	if err := f.PutAttShort(DataVar, name, value); err != nil {
		t.Fatal(err)
	}
}

func putFloat(t *testing.T, f *File, name string, value float32) {
	t.Helper()
	if err := f.PutAttFloat(DataVar, name, value); err != nil {
		t.Fatal(err)
	}
}

func TestUnmappedPassThrough(t *testing.T) {
	f := projDataset(t)
	p, err := NewProjection(f)
	if err != nil {
		t.Fatal(err)
	}
	if p.Info().Type != Unmapped {
		t.Fatalf("type %d, want unmapped", p.Info().Type)
	}
	lat, lon := p.PixelToGeo(10, 20)
	if lat != 20 || lon != 10 {
		t.Errorf("PixelToGeo: got (%g, %g), want (20, 10)", lat, lon)
	}
	i, j := p.GeoToPixel(20, 10)
	if i != 10 || j != 20 {
		t.Errorf("GeoToPixel: got (%g, %g), want (10, 20)", i, j)
	}
}

func TestMercatorRoundTrip(t *testing.T) {
	f := projDataset(t)
	putText(t, f, "projection_type", "mercator")
	putFloat(t, f, "end_latitude", 45)
	putFloat(t, f, "resolution", 1.1)
	putShort(t, f, "grid_ioffset", 100)
	putShort(t, f, "grid_joffset", 200)

	p, err := NewProjection(f)
	if err != nil {
		t.Fatal(err)
	}
	info := p.Info()
	if info.Type != Mercator || info.Hemisphere != 1 {
		t.Fatalf("got type %d hemisphere %d", info.Type, info.Hemisphere)
	}

	for _, c := range [][2]float64{{30.5, -120.25}, {0.5, 10}, {44.9, 179.5}} {
		i, j := p.GeoToPixel(c[0], c[1])
		lat, lon := p.PixelToGeo(i, j)
		if math.Abs(lat-c[0]) > 1e-6 || math.Abs(lon-c[1]) > 1e-6 {
			t.Errorf("(%g, %g): round trip gave (%g, %g)", c[0], c[1], lat, lon)
		}
	}
}

func TestMercatorSouthernHemisphere(t *testing.T) {
	f := projDataset(t)
	putText(t, f, "projection_type", "mercator")
	putFloat(t, f, "end_latitude", -20)
	putFloat(t, f, "resolution", 1.1)

	p, err := NewProjection(f)
	if err != nil {
		t.Fatal(err)
	}
	if p.Info().Hemisphere != -1 {
		t.Fatalf("hemisphere %d, want -1", p.Info().Hemisphere)
	}
	i, j := p.GeoToPixel(-35.25, 150)
	lat, lon := p.PixelToGeo(i, j)
	if math.Abs(lat-(-35.25)) > 1e-6 || math.Abs(lon-150) > 1e-6 {
		t.Errorf("round trip gave (%g, %g)", lat, lon)
	}
}

func TestPolarHeaderCorrections(t *testing.T) {
	f := projDataset(t)
	putText(t, f, "projection_type", "polar")
	putShort(t, f, "polar_hemisphere", 1)
	putShort(t, f, "polar_prime_longitude", -132)
	putFloat(t, f, "resolution", 1.5)
	putShort(t, f, "grid_ioffset", 100)
	putShort(t, f, "grid_joffset", 200)

	p, err := NewProjection(f)
	if err != nil {
		t.Fatal(err)
	}
	info := p.Info()
	if info.Resolution != 1.47 {
		t.Errorf("resolution %g, want 1.47", info.Resolution)
	}
	if info.PrimeLongitude != -132.5 {
		t.Errorf("prime longitude %g, want -132.5", info.PrimeLongitude)
	}
	// The grid offsets rescale with the resolution.
	if info.IOffset != 102 || info.JOffset != 204 {
		t.Errorf("offsets (%d, %d), want (102, 204)", info.IOffset, info.JOffset)
	}
}

func TestPolarDatelinePrimeLongitudes(t *testing.T) {
	cases := []struct {
		stored int16
		want   float64
	}{
		{180, -179.07},
		{179, 179.65},
		{-150, -150},
	}
	for _, c := range cases {
		f := projDataset(t)
		putText(t, f, "projection_type", "polar")
		putShort(t, f, "polar_hemisphere", 1)
		putShort(t, f, "polar_prime_longitude", c.stored)
		putFloat(t, f, "resolution", 2.9)

		p, err := NewProjection(f)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.Info().PrimeLongitude; got != c.want {
			t.Errorf("stored %d: got %g, want %g", c.stored, got, c.want)
		}
		if got := p.Info().Resolution; got != 2.94 {
			t.Errorf("stored %d: resolution %g, want 2.94", c.stored, got)
		}
	}
}

func TestPolarRoundTrip(t *testing.T) {
	f := projDataset(t)
	putText(t, f, "projection_type", "polar")
	putShort(t, f, "polar_hemisphere", 1)
	putShort(t, f, "polar_prime_longitude", -132)
	putFloat(t, f, "resolution", 1.47)

	p, err := NewProjection(f)
	if err != nil {
		t.Fatal(err)
	}
	// 1.47 is already the true resolution, so no correction applies and
	// the prime longitude stays at its stored value.
	if p.Info().PrimeLongitude != -132 {
		t.Fatalf("prime longitude %g", p.Info().PrimeLongitude)
	}

	for _, c := range [][2]float64{{60, -150}, {71.5, -132}, {55.25, 178}} {
		i, j := p.GeoToPixel(c[0], c[1])
		lat, lon := p.PixelToGeo(i, j)
		if math.Abs(lat-c[0]) > 1e-6 || math.Abs(lon-c[1]) > 1e-6 {
			t.Errorf("(%g, %g): round trip gave (%g, %g)", c[0], c[1], lat, lon)
		}
	}

	// Longitudes outside [-180, 180) normalize before projecting.
	i1, j1 := p.GeoToPixel(60, 181)
	i2, j2 := p.GeoToPixel(60, -179)
	if i1 != i2 || j1 != j2 {
		t.Errorf("181E mapped to (%g, %g), -179E to (%g, %g)", i1, j1, i2, j2)
	}
}

func TestLinearDerivedOffsets(t *testing.T) {
	f := projDataset(t)
	putText(t, f, "projection_type", "linear")
	putFloat(t, f, "start_latitude", 40)
	putFloat(t, f, "end_latitude", 30)
	putFloat(t, f, "start_longitude", -80)
	putFloat(t, f, "end_longitude", -70)

	p, err := NewProjection(f)
	if err != nil {
		t.Fatal(err)
	}
	info := p.Info()
	if info.Resolution != 0.01 {
		t.Errorf("resolution %g, want 0.01", info.Resolution)
	}
	if info.IOffset != -8000 || info.JOffset != -4000 {
		t.Errorf("offsets (%d, %d), want (-8000, -4000)", info.IOffset, info.JOffset)
	}

	// Pixel (1, 1) is the upper-left corner.
	lat, lon := p.PixelToGeo(1, 1)
	if math.Abs(lat-40) > 1e-9 || math.Abs(lon-(-80)) > 1e-9 {
		t.Errorf("corner: got (%g, %g), want (40, -80)", lat, lon)
	}
	i, j := p.GeoToPixel(40, -80)
	if math.Abs(i-1) > 1e-9 || math.Abs(j-1) > 1e-9 {
		t.Errorf("corner pixel: got (%g, %g), want (1, 1)", i, j)
	}
}
