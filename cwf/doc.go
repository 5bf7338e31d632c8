// Package cwf reads and writes CoastWatch Format (CWF) satellite
// imagery datasets.
//
// A CWF dataset is a single 2-D grid holding one data variable (a
// visible or infrared channel, an ancillary plane, or a cloud mask)
// with 57 fixed header attributes and, for imagery channels, an
// optional 4-bit graphics overlay packed into the pixel samples.
// Imagery datasets may be stored 1B-compressed (delta-coded channel
// plus run-length coded graphics); the library expands them into a
// scratch working copy on first pixel access and recompresses on close.
//
// The life cycle follows the classic create/define/write pattern:
//
//	f, err := cwf.Create("sst.cwf", cwf.Clobber)
//	rows, _ := f.DefDim("rows", 512)
//	cols, _ := f.DefDim("columns", 512)
//	f.DefVar("mcsst", cwf.Float, []cwf.DimID{rows, cols})
//	f.EndDef()
//	f.PutVarFloat(cwf.DataVar, window, values)
//	f.Close()
//
// Calibration between stored counts and physical values (degrees
// Celsius, percent albedo, angles, scan times) happens transparently in
// the variable accessors. Map projection support for the unmapped,
// Mercator, polar stereographic and linear grids used by CoastWatch
// products is provided by Projection.
package cwf
