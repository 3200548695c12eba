package clone

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DecodeError reports a candidate whose content is not valid UTF-8. Path is
// kept out of the message so callers can prefix it once.
type DecodeError struct {
	Path   string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DestinationName derives the clone's file name by replacing the first
// occurrence of start in name with replacement.
func DestinationName(name, start, replacement string) string {
	return strings.Replace(name, start, replacement, 1)
}

// RewriteContent decodes data as strict UTF-8 and replaces every occurrence of
// start with replacement. Content that fails to decode yields a *DecodeError
// with an empty Path; callers fill it in.
func RewriteContent(data []byte, start, replacement string) (string, error) {
	if _, n, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return "", &DecodeError{Offset: n, Err: err}
	}
	return strings.ReplaceAll(string(data), start, replacement), nil
}
