package model

import (
	"errors"
	"fmt"
	"strings"
)

// Section is an optional part of the dashboard. The sales level block is not
// a section; it is always rendered.
type Section string

// Dashboard sections in display order.
const (
	SectionReviews       Section = "reviews"
	SectionProductDetail Section = "product_detail"
	SectionGeographics   Section = "geographics"
)

// AllSections lists every section in display order.
func AllSections() []Section {
	return []Section{SectionReviews, SectionProductDetail, SectionGeographics}
}

// Title is the heading shown above the section.
func (s Section) Title() string {
	switch s {
	case SectionReviews:
		return "Reviews Impact"
	case SectionProductDetail:
		return "Product Detail Impact"
	case SectionGeographics:
		return "Geographics"
	default:
		return string(s)
	}
}

// ErrUnknownSection is returned by ParseSection for names outside AllSections.
var ErrUnknownSection = errors.New("unknown section")

// ParseSection accepts a section name or its title, case-insensitively.
func ParseSection(name string) (Section, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range AllSections() {
		if n == string(s) || n == strings.ToLower(s.Title()) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// ParseSections parses each name, dropping duplicates and keeping display order.
func ParseSections(names []string) ([]Section, error) {
	want := make(map[Section]bool, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		s, err := ParseSection(n)
		if err != nil {
			return nil, err
		}
		want[s] = true
	}
	out := make([]Section, 0, len(want))
	for _, s := range AllSections() {
		if want[s] {
			out = append(out, s)
		}
	}
	return out, nil
}
