// Package config loads the XML configuration file and resolves it into a
// validated backup configuration.
package config

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

// LookupKind tells how many elements matched a setting name.
type LookupKind int

const (
	LookupAbsent LookupKind = iota
	LookupFound
	LookupAmbiguous
)

func (k LookupKind) String() string {
	switch k {
	case LookupAbsent:
		return "absent"
	case LookupFound:
		return "found"
	case LookupAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// LookupResult is the outcome of looking up a setting by element name.
// Value is only meaningful when Kind is LookupFound.
type LookupResult struct {
	Kind  LookupKind
	Value string
	Count int
}

// Document is a parsed config file: element name to the text content of
// every element with that name, in document order.
type Document struct {
	values map[string][]string
	logger zerolog.Logger
}

// LoadFile reads and parses the config file at path.
func LoadFile(logger zerolog.Logger, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := LoadReader(logger, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadReader parses a config document from r (useful for testing).
func LoadReader(logger zerolog.Logger, r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrReadFailure)
	}

	values, err := parseElements(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	return &Document{values: values, logger: logger}, nil
}

type openElement struct {
	name string
	text strings.Builder
}

// parseElements collects the text content of every element, keyed by local
// name. Text inside nested elements counts toward every enclosing element.
func parseElements(content []byte) (map[string][]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charset.NewReaderLabel
	values := make(map[string][]string)

	var stack []*openElement
	roots := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				roots++
				if roots > 1 {
					return nil, fmt.Errorf("more than one root element (%s)", t.Name.Local)
				}
			}
			stack = append(stack, &openElement{name: t.Name.Local})
		case xml.EndElement:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			values[top.name] = append(values[top.name], top.text.String())
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("text outside of root element")
				}
				continue
			}
			for _, el := range stack {
				el.text.Write(t)
			}
		}
	}

	if roots == 0 {
		return nil, fmt.Errorf("no root element")
	}

	return values, nil
}

// Lookup returns how many elements are named setting and, for exactly one,
// its text content.
func (d *Document) Lookup(setting string) LookupResult {
	matches := d.values[setting]
	switch len(matches) {
	case 0:
		return LookupResult{Kind: LookupAbsent}
	case 1:
		return LookupResult{Kind: LookupFound, Value: matches[0], Count: 1}
	default:
		return LookupResult{Kind: LookupAmbiguous, Count: len(matches)}
	}
}

// Get returns the value of setting if exactly one element carries it.
// An ambiguous setting is logged and reported as not found.
func (d *Document) Get(setting string) (string, bool) {
	res := d.Lookup(setting)
	switch res.Kind {
	case LookupFound:
		d.logger.Debug().Str("setting", setting).Msg("config setting found")
		return res.Value, true
	case LookupAmbiguous:
		d.logger.Error().
			Str("setting", setting).
			Int("count", res.Count).
			Msg("could not determine setting value, possible syntax error in config file")
		return "", false
	default:
		d.logger.Debug().Str("setting", setting).Msg("config setting not found")
		return "", false
	}
}
