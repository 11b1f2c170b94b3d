package pipeline

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	// MaxNameLength caps sanitized names, in characters.
	MaxNameLength = 100
	// DefaultName replaces names that sanitize to nothing.
	DefaultName = "unnamed_report"

	csvExt = ".csv"
)

// Sanitize keeps letters, digits, spaces, '.', '_' and '-', replacing anything else
// with '_', collapses '_' runs, trims leading and trailing '_' and spaces and caps
// the length. Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(name string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		switch r {
		case ' ', '.', '_', '-':
			return r
		}
		return '_'
	}, name)
	for strings.Contains(safe, "__") {
		safe = strings.ReplaceAll(safe, "__", "_")
	}
	safe = strings.Trim(safe, "_ ")
	if runes := []rune(safe); len(runes) > MaxNameLength {
		safe = strings.Trim(string(runes[:MaxNameLength]), "_ ")
	}
	if safe == "" {
		return DefaultName
	}
	return safe
}

// Namer assigns unique CSV file names within one run. The first occurrence of a
// name keeps it; later ones get _2, _3, ... suffixes. Uniqueness is case
// insensitive so archives extract cleanly on case insensitive filesystems.
type Namer struct {
	counters map[string]int
	assigned map[string]bool
}

// Assign returns the file name for a report name.
func (n *Namer) Assign(name string) string {
	base := Sanitize(name)
	key := strings.ToLower(base)
	count, ok := n.counters[key]
	if !ok && !n.assigned[key+csvExt] {
		n.counters[key] = 1
		return n.claim(base + csvExt)
	}
	if count == 0 {
		count = 1
	}
	for {
		count++
		candidate := base + "_" + strconv.Itoa(count) + csvExt
		if !n.assigned[strings.ToLower(candidate)] {
			n.counters[key] = count
			return n.claim(candidate)
		}
	}
}

func (n *Namer) claim(filename string) string {
	n.assigned[strings.ToLower(filename)] = true
	return filename
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{counters: map[string]int{}, assigned: map[string]bool{}}
}
