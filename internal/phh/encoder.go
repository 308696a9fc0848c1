package phh

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSession writes hands as one .phhs document with a numbered section
// per hand.
func EncodeSession(w io.Writer, hands []HandHistory) error {
	for i := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, &hands[i]); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
	}
	return nil
}

// EncodeSessionBytes is EncodeSession into a byte slice.
func EncodeSessionBytes(hands []HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSession(&buf, hands); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSession reads a .phhs document back into hands ordered by section.
func DecodeSession(raw string) ([]HandHistory, error) {
	sections := map[string]HandHistory{}
	if _, err := toml.Decode(raw, &sections); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}

	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareSectionKeys)

	hands := make([]HandHistory, 0, len(keys))
	for _, k := range keys {
		hands = append(hands, sections[k])
	}
	return hands, nil
}

// compareSectionKeys orders numeric keys numerically and the rest lexically.
func compareSectionKeys(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai - bi
	}
	return strings.Compare(a, b)
}
