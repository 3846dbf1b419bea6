package jsonstore

import (
	"fmt"
	"strconv"
	"strings"
)

// pointerUnescaper decodes the RFC 6901 escape sequences. ~1 must be
// handled before ~0 so that "~01" decodes to "~1", not "/".
var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// splitPointer parses an RFC 6901 JSON Pointer into reference tokens.
// The empty pointer addresses the whole document.
func splitPointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("pointer %q does not start with /", pointer)
	}
	tokens := strings.Split(pointer[1:], "/")
	for i, tok := range tokens {
		tokens[i] = pointerUnescaper.Replace(tok)
	}
	return tokens, nil
}

// resolve walks the document to the value addressed by pointer.
func resolve(doc any, pointer string) (any, error) {
	tokens, err := splitPointer(pointer)
	if err != nil {
		return nil, ErrNotFound
	}
	return resolveTokens(doc, tokens)
}

// replace writes value at the location addressed by pointer and returns
// the (possibly new) document root. The pointer must already resolve;
// callers resolve first under the same lock.
func replace(doc any, pointer string, value any) (any, error) {
	tokens, err := splitPointer(pointer)
	if err != nil {
		return nil, ErrNotFound
	}
	if len(tokens) == 0 {
		return value, nil
	}

	parent, err := resolveTokens(doc, tokens[:len(tokens)-1])
	if err != nil {
		return nil, err
	}

	last := tokens[len(tokens)-1]
	switch v := parent.(type) {
	case map[string]any:
		if _, ok := v[last]; !ok {
			return nil, ErrNotFound
		}
		v[last] = value
	case []any:
		idx, err := arrayIndex(last, len(v))
		if err != nil {
			return nil, ErrNotFound
		}
		v[idx] = value
	default:
		return nil, ErrNotFound
	}
	return doc, nil
}

func resolveTokens(doc any, tokens []string) (any, error) {
	cur := doc
	for _, tok := range tokens {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, ErrNotFound
			}
			cur = next
		case []any:
			idx, err := arrayIndex(tok, len(v))
			if err != nil {
				return nil, ErrNotFound
			}
			cur = v[idx]
		default:
			return nil, ErrNotFound
		}
	}
	return cur, nil
}

func arrayIndex(tok string, length int) (int, error) {
	idx, err := strconv.Atoi(tok)
	if err != nil || idx < 0 || idx >= length {
		return 0, fmt.Errorf("index %q out of range", tok)
	}
	return idx, nil
}
