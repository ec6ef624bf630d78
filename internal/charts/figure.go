package charts

import "image"

// Figure is an encoded PNG held in memory together with its decoded raster.
// It is never written to disk on its own; release it with Close.
type Figure struct {
	data   []byte
	img    image.Image
	closed bool
}

// Bytes returns the PNG encoding; nil after Close
func (f *Figure) Bytes() []byte {
	return f.data
}

// Bounds returns the figure size in pixels; empty after Close
func (f *Figure) Bounds() image.Rectangle {
	if f.img == nil {
		return image.Rectangle{}
	}
	return f.img.Bounds()
}

// Closed reports whether Close has been called
func (f *Figure) Closed() bool {
	return f.closed
}

// Close drops the buffer and raster. Calling Close more than once is a no-op.
func (f *Figure) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.data = nil
	f.img = nil
	return nil
}
