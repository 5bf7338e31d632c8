package cwf

import "math"

// ProjType identifies the map projection of a dataset.
type ProjType int16

const (
	Unmapped    ProjType = 0
	Mercator    ProjType = 1
	PolarStereo ProjType = 2
	Linear      ProjType = 3
)

// Projection constants inherited from the operational processing chain.
// R is the spherical earth radius in km; the polar grid is anchored at
// column/row icen with jmax rows, scaled at the 60-degree standard
// parallel; b is the Mercator northing offset in earth radii.
const (
	projPi    = 3.141592654
	earthR    = 6371.2
	mercB     = 4.14159203
	polarJMax = 24385
	polarICen = 12193
)

func dtor(a float64) float64 { return a * projPi / 180 }
func rtod(a float64) float64 { return a * 180 / projPi }

// lonr normalizes a longitude to [-180, 180).
func lonr(a float64) float64 {
	if a >= 180 {
		return a - 360
	}
	if a < -180 {
		return a + 360
	}
	return a
}

func roundHalfAway(f float64) float64 {
	if f > 0 {
		return math.Floor(f + 0.5)
	}
	return math.Ceil(f - 0.5)
}

// Projection converts between image (i, j) coordinates and geographic
// (latitude, longitude) for one dataset. Construct with NewProjection;
// the value is immutable and safe for concurrent use.
type Projection struct {
	ptype ProjType
	hem   int16
	plon  float64
	res   float64
	ioff  int16
	joff  int16
}

// Info is a snapshot of the resolved projection parameters. Fields
// beyond Type apply only to the projections that use them.
type Info struct {
	Type           ProjType
	Resolution     float64
	PrimeLongitude float64
	Hemisphere     int16
	IOffset        int16
	JOffset        int16
}

// NewProjection reads and corrects the projection parameters recorded
// in a dataset's header.
func NewProjection(f *File) (*Projection, error) {
	text, err := f.GetAttText(DataVar, "projection_type")
	if err != nil {
		return nil, err
	}

	p := &Projection{}
	switch text {
	case "unmapped":
		p.ptype = Unmapped
	case "mercator":
		endLat, err := f.GetAttFloat(DataVar, "end_latitude")
		if err != nil {
			return nil, err
		}
		if endLat > 0 {
			p.hem = 1
		} else {
			p.hem = -1
		}
		p.ptype = Mercator
	case "polar":
		if p.hem, err = f.GetAttShort(DataVar, "polar_hemisphere"); err != nil {
			return nil, err
		}
		splon, err := f.GetAttShort(DataVar, "polar_prime_longitude")
		if err != nil {
			return nil, err
		}
		p.plon = float64(splon)
		p.ptype = PolarStereo
	case "linear":
		p.ptype = Linear
	default:
		return nil, codeErr(ErrAttValue)
	}

	if p.ptype != Unmapped {
		res, err := f.GetAttFloat(DataVar, "resolution")
		if err != nil {
			return nil, err
		}
		p.res = float64(res)
		if p.ioff, err = f.GetAttShort(DataVar, "grid_ioffset"); err != nil {
			return nil, err
		}
		if p.joff, err = f.GetAttShort(DataVar, "grid_joffset"); err != nil {
			return nil, err
		}
	}

	if p.ptype == Linear {
		if err := p.linearCorrect(f); err != nil {
			return nil, err
		}
	}
	if p.ptype == PolarStereo {
		p.polarCorrect()
	}
	return p, nil
}

// polarCorrect fixes up parameters of operational Alaska-region polar
// stereographic headers: nominal 1.5 and 2.9 km resolutions are stored
// values for true 1.47 and 2.94 km grids, and certain prime longitudes
// are recorded rounded.
func (p *Projection) polarCorrect() {
	if float32(p.res) == 1.5 {
		p.ioff = int16(roundHalfAway(float64(p.ioff) * 1.5 / 1.47))
		p.joff = int16(roundHalfAway(float64(p.joff) * 1.5 / 1.47))
		p.res = 1.47
	} else if float32(p.res) == 2.9 {
		p.ioff = int16(roundHalfAway(float64(p.ioff) * 2.9 / 2.94))
		p.joff = int16(roundHalfAway(float64(p.joff) * 2.9 / 2.94))
		p.res = 2.94
	}

	switch p.plon {
	case -132:
		p.plon = -132.5
	case 180:
		p.plon = -179.07
	case 179:
		p.plon = 179.65
	}
}

// linearCorrect guesses a resolution for degenerate headers and derives
// missing grid offsets from the corner coordinates.
func (p *Projection) linearCorrect(f *File) error {
	if p.res == 0 {
		p.res = 0.01
	}
	if p.ioff == 0 && p.joff == 0 {
		startLat, err := f.GetAttFloat(DataVar, "start_latitude")
		if err != nil {
			return err
		}
		endLat, err := f.GetAttFloat(DataVar, "end_latitude")
		if err != nil {
			return err
		}
		startLon, err := f.GetAttFloat(DataVar, "start_longitude")
		if err != nil {
			return err
		}
		endLon, err := f.GetAttFloat(DataVar, "end_longitude")
		if err != nil {
			return err
		}
		ulLat := float64(startLat)
		if float64(endLat) > ulLat {
			ulLat = float64(endLat)
		}
		ulLon := float64(startLon)
		if float64(endLon) < ulLon {
			ulLon = float64(endLon)
		}
		p.ioff = int16(roundHalfAway(ulLon / p.res))
		p.joff = int16(-roundHalfAway(ulLat / p.res))
	}
	return nil
}

// Info returns the resolved projection parameters.
func (p *Projection) Info() Info {
	return Info{
		Type:           p.ptype,
		Resolution:     p.res,
		PrimeLongitude: p.plon,
		Hemisphere:     p.hem,
		IOffset:        p.ioff,
		JOffset:        p.joff,
	}
}

// ijxy converts image (i, j) to grid (x, y); identical for all mapped
// projections.
func (p *Projection) ijxy(i, j float64) (x, y float64) {
	return (i + float64(p.ioff) - 1) * p.res, (j + float64(p.joff) - 1) * p.res
}

func (p *Projection) xyij(x, y float64) (i, j float64) {
	return x/p.res - float64(p.ioff) + 1, y/p.res - float64(p.joff) + 1
}

// PixelToGeo converts image (i, j) to (latitude, longitude). For
// unmapped datasets the coordinates pass through unchanged.
func (p *Projection) PixelToGeo(i, j float64) (lat, lon float64) {
	switch p.ptype {
	case Mercator:
		return p.mercatorToGeo(i, j)
	case PolarStereo:
		return p.polarToGeo(i, j)
	case Linear:
		x, y := p.ijxy(i, j)
		return -y, x
	default:
		return j, i
	}
}

// GeoToPixel converts (latitude, longitude) to image (i, j).
func (p *Projection) GeoToPixel(lat, lon float64) (i, j float64) {
	switch p.ptype {
	case Mercator:
		return p.mercatorToPixel(lat, lon)
	case PolarStereo:
		return p.polarToPixel(lat, lon)
	case Linear:
		return p.xyij(lon, -lat)
	default:
		return lon, lat
	}
}

func polarScale() float64 {
	return (1 + math.Sin(dtor(60.0))) * earthR
}

func (p *Projection) polarToGeo(i, j float64) (lat, lon float64) {
	x, y := p.ijxy(i, j)
	if p.hem == -1 {
		y = (polarJMax + 1) - y
	}

	dist := math.Sqrt(math.Pow(x-polarICen, 2) + math.Pow(y-polarICen, 2))
	lat = 90.0 - rtod(2*math.Atan(dist/polarScale()))
	plon := lonr(p.plon)
	signx := 1.0
	if x-polarICen < 0 {
		signx = -1.0
	}
	lon = lonr(rtod(math.Acos((y-polarICen)/dist))*signx + plon)
	return lat, lon
}

func (p *Projection) polarToPixel(lat, lon float64) (i, j float64) {
	dist := polarScale() * (math.Cos(dtor(lat)) / (1 + math.Sin(dtor(lat))))
	lon = lonr(lon)
	plon := lonr(p.plon)
	hem := float64(p.hem)
	x := polarICen + hem*dist*math.Sin(dtor(lon-plon))
	y := polarICen + hem*dist*math.Cos(dtor(lon-plon))
	if p.hem == -1 {
		y = (polarJMax + 1) - y
	}
	return p.xyij(x, y)
}

func (p *Projection) mercatorToGeo(i, j float64) (lat, lon float64) {
	x, y := p.ijxy(i, j)
	lat = rtod(2 * (math.Atan(math.Exp(math.Abs(y/earthR-mercB))) - projPi/4))
	if p.hem == -1 {
		lat = -math.Abs(lat)
	} else {
		lat = math.Abs(lat)
	}
	return lat, rtod(x / earthR)
}

func (p *Projection) mercatorToPixel(lat, lon float64) (i, j float64) {
	x := earthR * dtor(lon)
	ycor := math.Log(math.Tan(projPi/4 + math.Abs(dtor(lat))/2))
	if p.hem == -1 {
		ycor = math.Abs(ycor)
	} else {
		ycor = -math.Abs(ycor)
	}
	y := earthR * (ycor + mercB)
	return p.xyij(x, y)
}
