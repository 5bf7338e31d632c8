// Package calibrate converts between stored raw counts and physical
// values for each CWF data class, and packs/unpacks the combined
// channel+graphics sample representation. All transforms are pure and
// use float32 arithmetic to match existing files bit for bit.
package calibrate

import (
	"errors"
	"math"

	"github.com/coastwatch-go/cwf/internal/schema"
)

// BadValue marks samples outside the valid calibrated range.
const BadValue float32 = -999.0

const zeroC float32 = 273.15

// Errors reported by the transform dispatchers.
var (
	ErrDataClass   = errors.New("unsupported data class")
	ErrCalibration = errors.New("unsupported calibration type")
	ErrChannel     = errors.New("unsupported channel number")
)

func ktoc(k float32) float32 { return k - zeroC }

// round matches the reference rounding: away from zero at .5.
func round(f float32) float32 {
	if f > 0 {
		return float32(math.Floor(float64(f) + 0.5))
	}
	return float32(math.Ceil(float64(f) - 0.5))
}

// SeparateData extracts signed channel values from packed samples.
// The high 11 bits hold the magnitude, bit 15 the sign; the low nibble
// is the graphics overlay.
func SeparateData(dst []int16, packed []uint16) {
	for i, u := range packed {
		v := int16((u & 0x7FF0) >> 4)
		if u&0x8000 != 0 {
			v = -v
		}
		dst[i] = v
	}
}

// SeparateGraphics extracts the 4-bit graphics overlay from packed samples.
func SeparateGraphics(dst []byte, packed []uint16) {
	for i, u := range packed {
		dst[i] = byte(u & 0x000F)
	}
}

// Combine packs channel values and graphics into the stored sample
// representation. Either slice may be nil, in which case zeros are packed
// for that plane.
func Combine(packed []uint16, data []int16, graphics []byte) {
	for i := range packed {
		var d int16
		var g byte
		if data != nil {
			d = data[i]
		}
		if graphics != nil {
			g = graphics[i]
		}
		u := uint16(abs16(d)) << 4
		if d < 0 {
			u |= 0x8000
		}
		packed[i] = u | uint16(g)&0x000F
	}
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func calRaw(dst []float32, src []int16, flat bool) {
	if flat {
		for i, s := range src {
			if s < 0 || s > 1023 {
				dst[i] = BadValue
			} else {
				dst[i] = float32(s)
			}
		}
		return
	}
	for i, s := range src {
		if s < 1 || s > 1024 {
			dst[i] = BadValue
		} else {
			dst[i] = float32(s) - 1.0
		}
	}
}

func calVisible(dst []float32, src []int16, flat bool) {
	if flat {
		for i, s := range src {
			if s < 0 || s > 10000 {
				dst[i] = BadValue
			} else {
				dst[i] = float32(s) / 100.0
			}
		}
		return
	}
	for i, s := range src {
		if s < 1 || s > 2047 {
			dst[i] = BadValue
		} else {
			dst[i] = float32(s-1) / 20.47
		}
	}
}

func calInfrared(dst []float32, src []int16, flat bool, channel int16) {
	if flat {
		if channel <= schema.ChannelAVHRR5 {
			for i, s := range src {
				if s < 0 || s > 32760 {
					dst[i] = BadValue
				} else {
					dst[i] = ktoc(float32(s) / 100.0)
				}
			}
			return
		}
		for i, s := range src {
			if s < -4000 || s > 4000 {
				dst[i] = BadValue
			} else {
				dst[i] = float32(s) / 100.0
			}
		}
		return
	}

	// Piecewise-linear table anchored at 178K, 270K and 310K.
	for i, s := range src {
		switch {
		case s < 1 || s > 2047:
			dst[i] = BadValue
		case s == 1:
			dst[i] = ktoc(178.0)
		case s < 921:
			dst[i] = float32(s-1)*0.1 + ktoc(178.0)
		case s <= 1721:
			v := float32(s-921)*0.05 + ktoc(270.0)
			if float32(math.Abs(float64(v))) < 0.01 {
				v = 0.0
			}
			dst[i] = v
		default:
			dst[i] = float32(s-1721)*0.1 + ktoc(310.0)
		}
	}
}

func uncalRaw(dst []int16, src []float32) {
	for i, f := range src {
		if f == BadValue {
			dst[i] = 0
			continue
		}
		s := int16(round(f)) + 1
		if s < 1 || s > 1024 {
			s = 0
		}
		dst[i] = s
	}
}

func uncalVisible(dst []int16, src []float32) {
	for i, f := range src {
		if f == BadValue {
			dst[i] = 0
			continue
		}
		s := int16(round(f*20.47)) + 1
		if s < 1 || s > 2047 {
			s = 0
		}
		dst[i] = s
	}
}

func uncalInfrared(dst []int16, src []float32) {
	for i, f := range src {
		if f == BadValue || f < ktoc(178.0) {
			dst[i] = 0
			continue
		}
		var s int16
		switch {
		case f == ktoc(178.0):
			s = 1
		case f > ktoc(178.0) && f < ktoc(270.0):
			s = int16(round((f-ktoc(178.0))/0.1)) + 1
		case f >= ktoc(270.0) && f <= ktoc(310.0):
			s = int16(round((f-ktoc(270.0))/0.05)) + 921
		default:
			s = int16(round((f-ktoc(310.0))/0.1)) + 1721
		}
		if s < 1 || s > 2047 {
			s = 0
		}
		dst[i] = s
	}
}

// effectiveCalibration applies the historical fallback: files written
// with neither raw nor albedo_temperature calibration but carrying
// visible or infrared data are treated as albedo_temperature.
func effectiveCalibration(calibration, class int16) int16 {
	if calibration != schema.CalibrationRaw &&
		calibration != schema.CalibrationAlbedoTemperature &&
		(class == schema.DataVisible || class == schema.DataInfrared) {
		return schema.CalibrationAlbedoTemperature
	}
	return calibration
}

// DecodeChannel calibrates packed channel samples to physical values.
// For flat files the samples are the stored counts themselves; otherwise
// the channel plane is first separated from the graphics nibble.
func DecodeChannel(dst []float32, packed []uint16, calibration, class, compression, channel int16) error {
	var sp []int16
	if compression != schema.CompressionFlat {
		sp = make([]int16, len(packed))
		SeparateData(sp, packed)
	} else {
		sp = make([]int16, len(packed))
		for i, u := range packed {
			sp[i] = int16(u)
		}
	}
	flat := compression == schema.CompressionFlat

	switch effectiveCalibration(calibration, class) {
	case schema.CalibrationRaw:
		calRaw(dst, sp, flat)
	case schema.CalibrationAlbedoTemperature:
		switch class {
		case schema.DataVisible:
			calVisible(dst, sp, flat)
		case schema.DataInfrared:
			calInfrared(dst, sp, flat, channel)
		default:
			return ErrDataClass
		}
	default:
		return ErrCalibration
	}
	return nil
}

// EncodeChannel uncalibrates physical values and combines them with the
// graphics plane into packed samples.
func EncodeChannel(packed []uint16, src []float32, graphics []byte, calibration, class int16) error {
	var sp []int16
	if src != nil {
		sp = make([]int16, len(src))
		switch effectiveCalibration(calibration, class) {
		case schema.CalibrationRaw:
			uncalRaw(sp, src)
		case schema.CalibrationAlbedoTemperature:
			switch class {
			case schema.DataVisible:
				uncalVisible(sp, src)
			case schema.DataInfrared:
				uncalInfrared(sp, src)
			default:
				return ErrDataClass
			}
		default:
			return ErrCalibration
		}
	}
	Combine(packed, sp, graphics)
	return nil
}

// DecodeAncillary calibrates ancillary samples (angles and scan time).
func DecodeAncillary(dst []float32, raw []uint16, channel int16, compression int16) error {
	switch channel {
	case schema.ChannelScanAngle, schema.ChannelSatZenith,
		schema.ChannelSolZenith, schema.ChannelRelAzimuth:
		if compression == schema.CompressionFlat {
			for i, u := range raw {
				dst[i] = float32(u) / 100.0
			}
		} else {
			for i, u := range raw {
				if u == 0 {
					dst[i] = BadValue
				} else {
					dst[i] = float32(u-1) / 128.0
				}
			}
		}
	case schema.ChannelScanTime:
		// Matches the reference decode of the packed HHMM integer,
		// including its minutes arithmetic.
		for i, u := range raw {
			hours := int16(u) / 100
			minutes := int16(u) - hours
			dst[i] = float32(hours) + float32(minutes)/60
		}
	default:
		return ErrChannel
	}
	return nil
}

// EncodeAncillary uncalibrates ancillary values back to stored samples.
func EncodeAncillary(dst []uint16, src []float32, channel int16) error {
	switch channel {
	case schema.ChannelScanAngle, schema.ChannelSatZenith,
		schema.ChannelSolZenith, schema.ChannelRelAzimuth:
		for i, f := range src {
			if f == BadValue {
				dst[i] = 0
			} else {
				dst[i] = uint16(round(f*128.0)) + 1
			}
		}
	case schema.ChannelScanTime:
		for i, f := range src {
			hours := int16(f)
			minutes := int16(round((f - float32(hours)) * 60))
			dst[i] = uint16(hours*100 + minutes)
		}
	default:
		return ErrChannel
	}
	return nil
}
