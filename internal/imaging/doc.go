// Package imaging provides the pixel representation shared by the segmentation
// pipeline and the raster glue around it.
//
// # Grids and Masks
//
// A Grid is a row-major raster of 8-bit RGB pixels. A Mask is the derived ink
// map of a Grid: a cell holds ink iff its pixel is not exactly pure white
// (255,255,255). Masks are always recomputed from a Grid with Grid.Mask and are
// never edited on their own, so a Grid and its Mask always share dimensions.
//
// Grid transformations (Map, Replace, Median3x3, Crop, CombineHorizontal) are
// pure: they read the whole input and return a new Grid.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For rectangles, Min is inclusive and Max is exclusive
//
// # Color Predicates
//
// Pixel selection is expressed as a Predicate over RGBColor. BlueBand and
// HueBand describe watermark colors numerically; BrighterThan uses the HSL
// lightness computed by go-colorful.
//
// # Raster I/O
//
// ImageCache decodes PNG, JPEG, GIF, BMP and TIFF files and is safe for
// concurrent use. SavePNG and EncodeBase64PNG write results back out.
package imaging
