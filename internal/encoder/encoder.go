// Package encoder turns a selected CV file into the single text message the
// backend expects for an evaluation request.
package encoder

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	// Delimiter separates the position, filename and payload fields.
	Delimiter = " | "
	// delimiterReplacement stands in for Delimiter inside a field.
	delimiterReplacement = " / "

	evaluatePrefix = "Evaluate my CV for "
)

var ErrMalformed = errors.New("malformed evaluation message")

// Decoded is the content of an evaluation message.
type Decoded struct {
	Position string
	Filename string
	Data     []byte
}

// Encode reads the whole file and composes
// "Evaluate my CV for {position} | {filename} | {base64}".
// Encoding is all-or-nothing: any read failure returns a *FileReadError and
// no message.
func Encode(f *File, position string) (string, error) {
	data, err := f.ReadAll()
	if err != nil {
		return "", err
	}

	return Compose(position, f.Name, data), nil
}

// Compose builds the evaluation message for already materialised bytes.
func Compose(position, filename string, data []byte) string {
	var b strings.Builder
	b.WriteString(evaluatePrefix)
	b.WriteString(sanitize(position))
	b.WriteString(Delimiter)
	b.WriteString(sanitize(filename))
	b.WriteString(Delimiter)
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// Decode splits a message produced by Compose and decodes its payload.
func Decode(message string) (*Decoded, error) {
	rest, ok := strings.CutPrefix(message, evaluatePrefix)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrMalformed, strings.TrimSpace(evaluatePrefix))
	}

	parts := strings.SplitN(rest, Delimiter, 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformed, len(parts))
	}

	data, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}

	return &Decoded{Position: parts[0], Filename: parts[1], Data: data}, nil
}

// WrapForPosition prefixes an encoded message with an instruction naming the
// position the evaluation is for.
func WrapForPosition(position, encoded string) string {
	return fmt.Sprintf("Evaluate my CV specifically for %s position:\n%s", position, encoded)
}

func sanitize(field string) string {
	return strings.ReplaceAll(field, Delimiter, delimiterReplacement)
}
