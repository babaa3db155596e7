package main

import (
	"fmt"
	"io"
)

// Output is a uniform interface for writing to some stream, independent
// of whether it's stdout, stderr, or (in tests) a buffer.
type Output interface {
	Print(text string) (int, error)
	Println(text string) (int, error)
	Printf(format string, args ...interface{}) (int, error)
}

// PlainOutput writes data in a raw, unadorned format.
type PlainOutput struct {
	Device io.Writer
}

func (o *PlainOutput) Print(text string) (int, error) {
	return o.Device.Write([]byte(text))
}

func (o *PlainOutput) Println(text string) (int, error) {
	n1, err := o.Device.Write([]byte(text))
	if err != nil {
		return n1, err
	}
	n2, err := o.Device.Write([]byte{'\n'})
	return n1 + n2, err
}

func (o *PlainOutput) Printf(format string, args ...interface{}) (int, error) {
	return o.Device.Write([]byte(fmt.Sprintf(format, args...)))
}
