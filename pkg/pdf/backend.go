package pdf

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Backend names accepted by Lookup
const (
	BackendAuto       = "auto"
	BackendLedongthuc = "ledongthuc"
	BackendDslipak    = "dslipak"
)

// ErrUnknownBackend is returned by Lookup for names no decoder is registered under
var ErrUnknownBackend = errors.New("unknown PDF backend")

var backends = map[string]Opener{
	BackendAuto:       OpenAuto,
	BackendLedongthuc: OpenWithLedongthuc,
	BackendDslipak:    OpenWithDslipak,
}

// Backends returns the registered backend names, sorted
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the Opener registered under name
func Lookup(name string) (Opener, error) {
	open, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}
	return open, nil
}

// OpenAuto tries ledongthuc first, as it has the most accurate glyph
// positions, and falls back to dslipak.
func OpenAuto(filepath string) (Document, error) {
	doc, err := OpenWithLedongthuc(filepath)
	if err == nil {
		return doc, nil
	}

	doc, fallbackErr := OpenWithDslipak(filepath)
	if fallbackErr == nil {
		return doc, nil
	}

	return nil, errors.Join(err, fallbackErr)
}
