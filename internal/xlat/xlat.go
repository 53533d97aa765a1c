// Package xlat implements the byte translations debug console handlers
// apply when a translated write is requested: newline expansion for raw
// terminals and serial consoles, optionally chained with a single-byte
// charset encoding for targets that cannot take UTF-8.
package xlat

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// crlf expands bare LF bytes into CRLF pairs, leaving existing CRLF
// sequences intact. Raw-mode terminals and serial consoles both need the
// carriage return to actually return.
type crlf struct {
	prevCR bool
}

func (t *crlf) Reset() {
	t.prevCR = false
}

func (t *crlf) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c == '\n' && !t.prevCR {
			if nDst+2 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\r'
			dst[nDst+1] = '\n'
			nDst += 2
			nSrc++
			t.prevCR = false
			continue
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
		t.prevCR = c == '\r'
	}
	return nDst, nSrc, nil
}

// CRLF returns a fresh LF-to-CRLF transformer.
func CRLF() transform.Transformer {
	return &crlf{}
}

// Encode returns a transformer that first normalizes newlines to CRLF
// and then encodes into the given charset, substituting the charset's
// replacement byte for anything it cannot represent.
func Encode(enc encoding.Encoding) transform.Transformer {
	return transform.Chain(CRLF(), encoding.ReplaceUnsupported(enc.NewEncoder()))
}

// Bytes runs p through t and returns the result. Console output is best
// effort: on a transform error the input is passed through unchanged.
func Bytes(t transform.Transformer, p []byte) []byte {
	out, _, err := transform.Bytes(t, p)
	if err != nil {
		return p
	}
	return out
}
