// Package imaging provides the image side of the colour tools: loading and
// caching reference images, sampling pixels (the eyedropper), extracting a
// palette, and rendering swatches and coordinate grids.
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Colours
//
// Sampled and extracted colours are reported through the colormath package, so
// a pixel comes back as normalized hex, RGB, HSL and CMYK at once. Alpha is
// reported separately because palette colours are always opaque.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The remaining functions are
// stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - Malformed hex colours (wrapping colormath.ErrInvalidColorFormat)
//   - File I/O and decoding errors during image loading
package imaging
