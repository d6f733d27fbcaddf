// Package panels serves the informational side panels and their open/close state.
package panels

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Section identifies an informational panel. The empty section means closed.
type Section string

const (
	None           Section = ""
	AboutPlatform  Section = "about-platform"
	DataCollection Section = "data-collection"
	Updates        Section = "updates"
)

var ErrUnknownSection = errors.New("unknown panel section")

// ParseSection validates a section name received from the UI.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case AboutPlatform, DataCollection, Updates:
		return Section(s), nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// Toggle opens next, or closes it when it is already open.
func Toggle(current, next Section) Section {
	if current == next {
		return None
	}
	return next
}

type Block struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

type Entry struct {
	Date  string   `yaml:"date" json:"date"`
	Items []string `yaml:"items" json:"items"`
}

// Panel is the content of one section.
type Panel struct {
	Section  Section `yaml:"-" json:"section"`
	Title    string  `yaml:"title" json:"title"`
	Subtitle string  `yaml:"subtitle" json:"subtitle,omitempty"`
	Note     string  `yaml:"note" json:"note,omitempty"`
	Intro    string  `yaml:"intro" json:"intro,omitempty"`
	Sections []Block `yaml:"sections" json:"sections,omitempty"`
	Entries  []Entry `yaml:"entries" json:"entries,omitempty"`
}

//go:embed content.yaml
var contentYAML []byte

// Library holds the parsed panel copy.
type Library struct {
	panels map[Section]Panel
}

// Load parses the embedded panel copy.
func Load() (*Library, error) {
	return Parse(contentYAML)
}

// Parse reads panel copy keyed by section name.
func Parse(data []byte) (*Library, error) {
	raw := map[string]Panel{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse panel content: %w", err)
	}

	lib := &Library{panels: make(map[Section]Panel, len(raw))}
	for name, p := range raw {
		s, err := ParseSection(name)
		if err != nil {
			return nil, err
		}
		p.Section = s
		lib.panels[s] = p
	}
	return lib, nil
}

// Get returns the panel for s.
func (l *Library) Get(s Section) (Panel, error) {
	p, ok := l.panels[s]
	if !ok {
		return Panel{}, fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return p, nil
}

// Open returns the panel for current, or nil when no panel is open.
func (l *Library) Open(current Section) *Panel {
	if current == None {
		return nil
	}
	p, err := l.Get(current)
	if err != nil {
		return nil
	}
	return &p
}
