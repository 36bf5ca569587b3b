package downloader

import "io"

type countingWriter struct {
	w        io.Writer
	n        int64
	progress func(done int64)
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.n += int64(n)
		if c.progress != nil {
			c.progress(c.n)
		}
	}

	return n, err
}

// copyWithProgress copies src into dst, reporting the running total after
// every write.
func copyWithProgress(dst io.Writer, src io.Reader, progress func(done int64)) (int64, error) {
	return io.Copy(&countingWriter{w: dst, progress: progress}, src)
}
