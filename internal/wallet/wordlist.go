package wallet

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// WordListSize is the number of words in a mnemonic dictionary.
const WordListSize = 2048

// bitsPerWord is the number of bits each word encodes (log2 of WordListSize).
const bitsPerWord = 11

// WordList is an immutable, ordered mnemonic dictionary. The word at
// position p is addressed by the 11-bit value p. Safe for concurrent use.
type WordList struct {
	words []string
	index map[string]uint16
}

// NewWordList builds a dictionary from exactly 2048 distinct, non-empty words.
// The slice is copied.
func NewWordList(words []string) (*WordList, error) {
	if len(words) != WordListSize {
		return nil, fmt.Errorf("%w: want %d words, got %d", ErrDataError, WordListSize, len(words))
	}

	wl := &WordList{
		words: make([]string, WordListSize),
		index: make(map[string]uint16, WordListSize),
	}
	for i, w := range words {
		if w == "" {
			return nil, fmt.Errorf("%w: empty entry at position %d", ErrDataError, i)
		}
		if prev, dup := wl.index[w]; dup {
			return nil, fmt.Errorf("%w: %q appears at positions %d and %d", ErrDataError, w, prev, i)
		}
		wl.words[i] = w
		wl.index[w] = uint16(i)
	}
	return wl, nil
}

// LoadWordList reads a newline-separated dictionary. Surrounding whitespace
// (including a Windows "\r") is trimmed from every line; blank lines count
// as entries and are therefore rejected.
func LoadWordList(r io.Reader) (*WordList, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return NewWordList(words)
}

var (
	englishOnce sync.Once
	english     *WordList
)

// EnglishWordList returns the standard BIP-39 English dictionary. It is
// built once per process and shared read-only.
func EnglishWordList() *WordList {
	englishOnce.Do(func() {
		wl, err := NewWordList(wordlists.English)
		if err != nil {
			panic("bip39 english word list is malformed: " + err.Error())
		}
		english = wl
	})
	return english
}

// Len returns the number of words in the dictionary.
func (wl *WordList) Len() int {
	return len(wl.words)
}

// IndexOf returns the 11-bit position of word.
func (wl *WordList) IndexOf(word string) (uint16, error) {
	idx, ok := wl.index[word]
	if !ok {
		return 0, &UnknownWordError{Word: word}
	}
	return idx, nil
}

// WordAt returns the word at an 11-bit position.
func (wl *WordList) WordAt(idx uint16) (string, error) {
	if int(idx) >= len(wl.words) {
		return "", fmt.Errorf("%w: %d", ErrIndexRange, idx)
	}
	return wl.words[idx], nil
}

// Words returns a copy of the dictionary in order.
func (wl *WordList) Words() []string {
	out := make([]string, len(wl.words))
	copy(out, wl.words)
	return out
}
