// SPDX-License-Identifier: MPL-2.0

// Package xmlwriter is a small streaming XML writer with an explicit
// open/attribute/close protocol. It produces the layout Eclipse uses for its
// descriptor files: one element per line, tab indentation and " />" for
// empty elements.
//
//	w.OpenOpeningTag("classpathentry")
//	w.AppendAttribute("kind", "src")
//	w.AppendAttribute("path", "src")
//	w.CloseDegeneratedElement()
//
// Errors are sticky: after the first write failure every call is a no-op and
// Err returns that failure.
package xmlwriter

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrProtocol is returned when calls violate the open/close protocol.
var ErrProtocol = errors.New("xml writer protocol violation")

// Writer writes XML to an underlying io.Writer.
type Writer struct {
	w       *bufio.Writer
	stack   []string
	tagOpen bool
	err     error
}

// New returns a Writer that buffers output to w. Call Flush (or Close on the
// underlying resource after Flush) to push the remaining bytes.
func New(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Err returns the first error encountered, if any.
func (x *Writer) Err() error { return x.err }

// WriteXMLDeclaration writes the <?xml ...?> prolog.
func (x *Writer) WriteXMLDeclaration(encoding string) {
	x.printf("<?xml version=\"1.0\" encoding=%q?>\n", encoding)
}

// OpenElement writes a complete opening tag without attributes.
func (x *Writer) OpenElement(name string) {
	x.OpenOpeningTag(name)
	x.CloseOpeningTag()
}

// OpenOpeningTag starts an opening tag; attributes may follow.
func (x *Writer) OpenOpeningTag(name string) {
	if x.tagOpen {
		x.fail(fmt.Errorf("%w: <%s> opened inside an unfinished tag", ErrProtocol, name))
		return
	}
	x.indent()
	x.printf("<%s", name)
	x.stack = append(x.stack, name)
	x.tagOpen = true
}

// AppendAttribute adds an attribute to the tag being opened. The value is
// escaped.
func (x *Writer) AppendAttribute(name, value string) {
	if !x.tagOpen {
		x.fail(fmt.Errorf("%w: attribute %q outside an opening tag", ErrProtocol, name))
		return
	}
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(value)); err != nil {
		x.fail(err)
		return
	}
	x.printf(" %s=\"%s\"", name, b.String())
}

// CloseOpeningTag finishes the tag being opened; children may follow.
func (x *Writer) CloseOpeningTag() {
	if !x.tagOpen {
		x.fail(fmt.Errorf("%w: no opening tag to close", ErrProtocol))
		return
	}
	x.printf(">\n")
	x.tagOpen = false
}

// CloseDegeneratedElement finishes the tag being opened as an empty element.
func (x *Writer) CloseDegeneratedElement() {
	if !x.tagOpen {
		x.fail(fmt.Errorf("%w: no opening tag to close", ErrProtocol))
		return
	}
	x.printf(" />\n")
	x.stack = x.stack[:len(x.stack)-1]
	x.tagOpen = false
}

// CloseElement writes the closing tag of the innermost open element, which
// must be name.
func (x *Writer) CloseElement(name string) {
	if x.tagOpen || len(x.stack) == 0 || x.stack[len(x.stack)-1] != name {
		x.fail(fmt.Errorf("%w: unexpected </%s>", ErrProtocol, name))
		return
	}
	x.stack = x.stack[:len(x.stack)-1]
	x.indent()
	x.printf("</%s>\n", name)
}

// Flush writes buffered output and reports unclosed elements.
func (x *Writer) Flush() error {
	if x.err != nil {
		return x.err
	}
	if err := x.w.Flush(); err != nil {
		x.err = err
		return err
	}
	if len(x.stack) > 0 {
		return fmt.Errorf("%w: unclosed <%s>", ErrProtocol, x.stack[len(x.stack)-1])
	}
	return nil
}

func (x *Writer) indent() {
	depth := len(x.stack)
	if depth > 0 {
		x.printf("%s", strings.Repeat("\t", depth))
	}
}

func (x *Writer) printf(format string, args ...any) {
	if x.err != nil {
		return
	}
	if _, err := fmt.Fprintf(x.w, format, args...); err != nil {
		x.err = err
	}
}

func (x *Writer) fail(err error) {
	if x.err == nil {
		x.err = err
	}
}
