package wallet

import (
	"errors"
	"fmt"
)

// Mnemonic and derivation errors.
var (
	// ErrInvalidLength reports entropy, phrase or seed of an unsupported size.
	ErrInvalidLength = errors.New("invalid length")
	// ErrUnknownWord reports a phrase word that is not in the dictionary.
	ErrUnknownWord = errors.New("unknown word")
	// ErrChecksumMismatch reports a well-formed phrase whose checksum does not verify.
	ErrChecksumMismatch = errors.New("checksum mismatch: words are valid but out of order, or entropy was corrupted")
	// ErrIndexOutOfBounds reports a chain index outside the permitted range.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrIndexRange reports a word index outside 0..2047.
	ErrIndexRange = errors.New("word index out of range")
	// ErrDataError reports a malformed word dictionary.
	ErrDataError = errors.New("invalid word list")
	// ErrInvariant reports an internal consistency failure. It indicates a
	// corrupted dictionary or a programming defect, never bad user input.
	ErrInvariant = errors.New("internal invariant violated")
)

// UnknownWordError names the phrase word that failed dictionary lookup.
type UnknownWordError struct {
	Word     string
	Position int // 1-based position in the phrase, 0 when not applicable
}

func (e *UnknownWordError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("word %d %q is not in the mnemonic dictionary; may be misspelled", e.Position, e.Word)
	}
	return fmt.Sprintf("%q is not in the mnemonic dictionary; may be misspelled", e.Word)
}

// Unwrap lets errors.Is match ErrUnknownWord.
func (e *UnknownWordError) Unwrap() error {
	return ErrUnknownWord
}
