// Package encoding provides text decoding helpers for XML-based asset formats.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedCharset is returned when an XML prolog declares an encoding
// that cannot be decoded.
var ErrUnsupportedCharset = errors.New("unsupported charset")

// CharsetReader returns a reader converting input from the named encoding to
// UTF-8. It is meant for xml.Decoder.CharsetReader on input already passed
// through StripBOM, so UTF-16 labels are treated as UTF-8.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	r, err := charset.NewReaderLabel(label, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, label)
	}
	return r, nil
}

// StripBOM returns a reader that drops a leading byte order mark.
// UTF-16 input with a BOM is decoded to UTF-8; anything else passes through
// as UTF-8.
func StripBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}
