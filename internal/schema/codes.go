package schema

// Attribute indices into Attributes. Kept in table order.
const (
	AttSatelliteID = iota
	AttSatelliteType
	AttDataSetType
	AttProjectionType
	AttStartLatitude
	AttEndLatitude
	AttStartLongitude
	AttEndLongitude
	AttResolution
	AttPolarGridSize
	AttPolarGridPoints
	AttPolarHemisphere
	AttPolarPrimeLongitude
	AttGridIOffset
	AttGridJOffset
	AttCompositeType
	AttCalibrationType
	AttFillType
	AttChannelNumber
	AttDataID
	AttSunNormalization
	AttLimbCorrection
	AttNonlinearityCorrection
	AttOrbitsProcessed
	AttChannelsProduced
	AttChannelPixelSize
	AttChannelStartBlock
	AttChannelEndBlock
	AttAncillariesProduced
	AttAncillaryPixelSize
	AttAncillaryStartBlock
	AttAncillaryEndBlock
	AttImageBlockSize
	AttCompressionType
	AttPercentNonZero
	AttHorizontalShift
	AttVerticalShift
	AttHorizontalSkew
	AttVerticalSkew
	AttOrbitType
	AttOrbitTime
	AttStartRow
	AttStartColumn
	AttEndRow
	AttEndColumn
	AttOrbitStartYear
	AttOrbitStartDay
	AttOrbitStartMonthDay
	AttOrbitStartHourMinute
	AttOrbitStartSecond
	AttOrbitStartMillisecond
	AttOrbitEndYear
	AttOrbitEndDay
	AttOrbitEndMonthDay
	AttOrbitEndHourMinute
	AttOrbitEndSecond
	AttOrbitEndMillisecond

	NumAttributes
)

// Header byte offsets used directly by the dataset machinery.
const (
	OffProjectionType      = 6
	OffResolution          = 16
	OffPolarHemisphere     = 26
	OffPolarPrimeLongitude = 28
	OffGridIOffset         = 30
	OffGridJOffset         = 32
	OffCalibrationType     = 44
	OffChannelNumber       = 48
	OffDataID              = 50
	OffChannelsProduced    = 60
	OffChannelPixelSize    = 62
	OffAncillariesProduced = 68
	OffAncillaryPixelSize  = 70
	OffCompressionType     = 78
	OffHorizontalShift     = 84
	OffVerticalShift       = 86
)

// Data class codes (data_id attribute).
const (
	DataVisible   int16 = 0
	DataInfrared  int16 = 1
	DataAncillary int16 = 2
	DataCloud     int16 = 3
)

// Calibration type codes.
const (
	CalibrationRaw               int16 = 0
	CalibrationAlbedoTemperature int16 = 2
)

// Compression type codes.
const (
	CompressionNone int16 = 0
	CompressionFlat int16 = 1
	Compression1B   int16 = 2
)

// Projection type codes.
const (
	ProjUnmapped int16 = 0
	ProjMercator int16 = 1
	ProjPolar    int16 = 2
	ProjLinear   int16 = 3
)

// Channel number codes.
const (
	ChannelAVHRR1       int16 = 1
	ChannelAVHRR2       int16 = 2
	ChannelAVHRR3       int16 = 3
	ChannelAVHRR4       int16 = 4
	ChannelAVHRR5       int16 = 5
	ChannelMCSST        int16 = 6
	ChannelScanAngle    int16 = 101
	ChannelSatZenith    int16 = 102
	ChannelSolZenith    int16 = 103
	ChannelRelAzimuth   int16 = 104
	ChannelScanTime     int16 = 105
	ChannelMCSSTSplit   int16 = 201
	ChannelMCSSTDual    int16 = 202
	ChannelMCSSTTriple  int16 = 203
	ChannelCPSSTSplit   int16 = 204
	ChannelCPSSTDual    int16 = 205
	ChannelCPSSTTriple  int16 = 206
	ChannelNLSSTSplit   int16 = 207
	ChannelNLSSTDual    int16 = 208
	ChannelNLSSTTriple  int16 = 209
	ChannelSSTMulti     int16 = 210
	ChannelOceanReflect int16 = 301
	ChannelTurbidity    int16 = 302
	ChannelCloud        int16 = 401
)

var satelliteID = []CodePair{
	{"noaa-6", -10815},
	{"noaa-7", -10813},
	{"noaa-8", -10811},
	{"noaa-9", -10810},
	{"noaa-10", -10809},
	{"noaa-11", -10808},
	{"noaa-12", -10812},
	{"noaa-14", -10799},
	{"noaa-15", -10798},
	{"noaa-16", -10797},
	{"noaa-17", -10796},
}

var satelliteType = []CodePair{
	{"morning", 0},
	{"afternoon", 1},
}

var dataSetType = []CodePair{
	{"lac", 1},
	{"gac", 2},
	{"hrpt", 3},
}

var projectionType = []CodePair{
	{"unmapped", ProjUnmapped},
	{"mercator", ProjMercator},
	{"polar", ProjPolar},
	{"linear", ProjLinear},
}

var compositeType = []CodePair{
	{"none", 0},
	{"nadir", 1},
	{"average", 2},
	{"latest", 3},
	{"warmest", 4},
	{"coldest", 5},
}

var calibrationType = []CodePair{
	{"raw", CalibrationRaw},
	{"albedo_temperature", CalibrationAlbedoTemperature},
}

var fillType = []CodePair{
	{"none", 0},
	{"average", 1},
	{"adjacent", 2},
}

var channelNumber = []CodePair{
	{"avhrr_ch1", ChannelAVHRR1},
	{"avhrr_ch2", ChannelAVHRR2},
	{"avhrr_ch3", ChannelAVHRR3},
	{"avhrr_ch4", ChannelAVHRR4},
	{"avhrr_ch5", ChannelAVHRR5},
	{"mcsst", ChannelMCSST},
	{"scan_angle", ChannelScanAngle},
	{"sat_zenith", ChannelSatZenith},
	{"solar_zenith", ChannelSolZenith},
	{"rel_azimuth", ChannelRelAzimuth},
	{"scan_time", ChannelScanTime},
	{"mcsst_split", ChannelMCSSTSplit},
	{"mcsst_dual", ChannelMCSSTDual},
	{"mcsst_triple", ChannelMCSSTTriple},
	{"cpsst_split", ChannelCPSSTSplit},
	{"cpsst_dual", ChannelCPSSTDual},
	{"cpsst_triple", ChannelCPSSTTriple},
	{"nlsst_split", ChannelNLSSTSplit},
	{"nlsst_dual", ChannelNLSSTDual},
	{"nlsst_triple", ChannelNLSSTTriple},
	{"sst_multi", ChannelSSTMulti},
	{"ocean_reflect", ChannelOceanReflect},
	{"turbidity", ChannelTurbidity},
	{"cloud", ChannelCloud},
}

var dataID = []CodePair{
	{"visible", DataVisible},
	{"infrared", DataInfrared},
	{"ancillary", DataAncillary},
	{"cloud", DataCloud},
}

var yesNo = []CodePair{
	{"no", 0},
	{"yes", 1},
}

var compressionType = []CodePair{
	{"none", CompressionNone},
	{"flat", CompressionFlat},
	{"1b", Compression1B},
}

var orbitType = []CodePair{
	{"ascending", -1},
	{"descending", 1},
	{"both", 2},
}

var orbitTime = []CodePair{
	{"day", 0},
	{"night", 1},
	{"both", 2},
}

// Attributes is the fixed header attribute table. Offsets and codes are
// part of the wire format.
var Attributes = [NumAttributes]Attribute{
	{"satellite_id", 0, satelliteID, false, 0, Char},
	{"satellite_type", 2, satelliteType, false, 0, Char},
	{"data_set_type", 4, dataSetType, false, 0, Char},
	{"projection_type", OffProjectionType, projectionType, false, 0, Char},
	{"start_latitude", 8, nil, false, LatLonScale, Float},
	{"end_latitude", 10, nil, false, LatLonScale, Float},
	{"start_longitude", 12, nil, false, LatLonScale, Float},
	{"end_longitude", 14, nil, false, LatLonScale, Float},
	{"resolution", OffResolution, nil, false, ResolutionScale, Float},
	{"polar_grid_size", 22, nil, false, 0, Short},
	{"polar_grid_points", 24, nil, false, 0, Short},
	{"polar_hemisphere", OffPolarHemisphere, nil, false, 0, Short},
	{"polar_prime_longitude", OffPolarPrimeLongitude, nil, false, 0, Short},
	{"grid_ioffset", OffGridIOffset, nil, false, 0, Short},
	{"grid_joffset", OffGridJOffset, nil, false, 0, Short},
	{"composite_type", 42, compositeType, false, 0, Char},
	{"calibration_type", OffCalibrationType, calibrationType, true, 0, Char},
	{"fill_type", 46, fillType, false, 0, Char},
	{"channel_number", OffChannelNumber, channelNumber, true, 0, Char},
	{"data_id", OffDataID, dataID, true, 0, Char},
	{"sun_normalization", 52, yesNo, false, 0, Char},
	{"limb_correction", 54, yesNo, false, 0, Char},
	{"nonlinearity_correction", 56, yesNo, false, 0, Char},
	{"orbits_processed", 58, nil, false, 0, Short},
	{"channels_produced", OffChannelsProduced, nil, true, 0, Short},
	{"channel_pixel_size", OffChannelPixelSize, nil, true, 0, Short},
	{"channel_start_block", 64, nil, false, 0, Short},
	{"channel_end_block", 66, nil, false, 0, Short},
	{"ancillaries_produced", OffAncillariesProduced, nil, true, 0, Short},
	{"ancillary_pixel_size", OffAncillaryPixelSize, nil, true, 0, Short},
	{"ancillary_start_block", 72, nil, false, 0, Short},
	{"ancillary_end_block", 74, nil, false, 0, Short},
	{"image_block_size", 76, nil, false, 0, Short},
	{"compression_type", OffCompressionType, compressionType, true, 0, Char},
	{"percent_non_zero", 82, nil, false, 0, Short},
	{"horizontal_shift", OffHorizontalShift, nil, false, 0, Short},
	{"vertical_shift", OffVerticalShift, nil, false, 0, Short},
	{"horizontal_skew", 88, nil, false, 0, Short},
	{"vertical_skew", 90, nil, false, 0, Short},
	{"orbit_type", 100, orbitType, false, 0, Char},
	{"orbit_time", 102, orbitTime, false, 0, Char},
	{"start_row", 104, nil, false, 0, Short},
	{"start_column", 106, nil, false, 0, Short},
	{"end_row", 108, nil, false, 0, Short},
	{"end_column", 110, nil, false, 0, Short},
	{"orbit_start_year", 112, nil, false, 0, Short},
	{"orbit_start_day", 114, nil, false, 0, Short},
	{"orbit_start_month_day", 116, nil, false, 0, Short},
	{"orbit_start_hour_minute", 118, nil, false, 0, Short},
	{"orbit_start_second", 120, nil, false, 0, Short},
	{"orbit_start_millisecond", 122, nil, false, 0, Short},
	{"orbit_end_year", 124, nil, false, 0, Short},
	{"orbit_end_day", 126, nil, false, 0, Short},
	{"orbit_end_month_day", 128, nil, false, 0, Short},
	{"orbit_end_hour_minute", 130, nil, false, 0, Short},
	{"orbit_end_second", 132, nil, false, 0, Short},
	{"orbit_end_millisecond", 134, nil, false, 0, Short},
}

// ClassForChannel maps a channel number code to its data class and the
// external type callers must use for pixel I/O. Channels present in the
// code table but absent here (sst_multi) report ok == false.
func ClassForChannel(channel int16) (class int16, xtype Type, ok bool) {
	switch channel {
	case ChannelAVHRR1, ChannelAVHRR2, ChannelOceanReflect, ChannelTurbidity:
		return DataVisible, Float, true
	case ChannelAVHRR3, ChannelAVHRR4, ChannelAVHRR5, ChannelMCSST,
		ChannelMCSSTSplit, ChannelMCSSTDual, ChannelMCSSTTriple,
		ChannelCPSSTSplit, ChannelCPSSTDual, ChannelCPSSTTriple,
		ChannelNLSSTSplit, ChannelNLSSTDual, ChannelNLSSTTriple:
		return DataInfrared, Float, true
	case ChannelScanAngle, ChannelSatZenith, ChannelSolZenith,
		ChannelRelAzimuth, ChannelScanTime:
		return DataAncillary, Float, true
	case ChannelCloud:
		return DataCloud, Byte, true
	}
	return 0, 0, false
}
