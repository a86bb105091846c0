// Package stl writes surface meshes as binary STL files.
//
// Triangles are streamed through a channel to a writer goroutine, and the
// triangle count in the header is patched in when the file is closed.
package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	headerSize = 80
	bufSize    = 10000
)

// Client is a streaming binary STL file writer client.
type Client struct {
	wg sync.WaitGroup // ensures file is closed
	ch chan Tri

	mu    sync.RWMutex
	err   error
	count uint32
}

// Tri represents an STL triangle.
type Tri struct {
	// Normal plus three vertex triplets: [3]float{x,y,z}
	N, V1, V2, V3 [3]float32
	_             uint16 // unused attribute byte count
}

// WriteSeekCloser is the destination of a Client.
type WriteSeekCloser interface {
	io.Writer
	io.Seeker
	io.Closer
}

// New creates a new streaming binary STL file writer.
func New(filename string) (*Client, error) {
	out, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	c, err := NewWriter(out)
	if err != nil {
		out.Close()
		return nil, err
	}
	return c, nil
}

// NewWriter writes the STL header to out and returns a client streaming
// triangles after it. Close closes out.
func NewWriter(out WriteSeekCloser) (*Client, error) {
	header := struct {
		_ [headerSize]uint8
		_ uint32 // count will be overwritten on channel close.
	}{}
	if err := binary.Write(out, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}

	c := &Client{ch: make(chan Tri, bufSize)}
	c.start(out)
	return c, nil
}

func (c *Client) start(out WriteSeekCloser) {
	c.wg.Add(1)
	go func() {
		count, err := writer(out, c.ch)
		c.mu.Lock()
		c.err = err
		c.count = count
		c.mu.Unlock()
		c.wg.Done()
	}()
}

// Write writes a triangle to the STL file.
func (c *Client) Write(t *Tri) error {
	c.ch <- *t
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Close finalizes the STL file.
func (c *Client) Close() error {
	close(c.ch)
	c.wg.Wait()
	return c.err
}

// Count returns the number of triangles written. It is only valid after
// Close.
func (c *Client) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int(c.count)
}

func writer(out WriteSeekCloser, ch <-chan Tri) (uint32, error) {
	var count uint32
	var werr error
	for t := range ch {
		if werr != nil {
			continue // drain so Write never blocks
		}
		if err := binary.Write(out, binary.LittleEndian, &t); err != nil {
			werr = fmt.Errorf("write triangle %#v: %w", t, err)
			continue
		}
		count++
	}
	if werr != nil {
		out.Close()
		return count, werr
	}

	if _, err := out.Seek(headerSize, io.SeekStart); err != nil {
		return count, fmt.Errorf("seek: %w", err)
	}

	if err := binary.Write(out, binary.LittleEndian, &count); err != nil {
		return count, fmt.Errorf("write count %v: %w", count, err)
	}

	return count, out.Close()
}
