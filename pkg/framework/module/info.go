package module

import (
	"fmt"
	"regexp"
)

// Info contains module metadata
type Info struct {
	Slug        string   // Unique within the plugin, used in patches (e.g. "Accumulator")
	Name        string   // Display name
	Description string   // One-line summary
	Tags        []string // Browser tags (e.g. "Logic", "Quantizer")
}

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validate checks that the slug is usable as a patch identifier
func (i Info) Validate() error {
	if i.Slug == "" {
		return fmt.Errorf("module slug is empty")
	}
	if !slugPattern.MatchString(i.Slug) {
		return fmt.Errorf("module slug %q may only contain letters, digits, '-' and '_'", i.Slug)
	}
	return nil
}

// DisplayName returns Name, falling back to the slug
func (i Info) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Slug
}
