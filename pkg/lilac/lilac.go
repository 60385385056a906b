// Package lilac registers every module in the collection.
package lilac

import (
	"fmt"

	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/modules/accumulator"
	"github.com/grough/lilac-modules-vcv/pkg/modules/accumulatorsingle"
	"github.com/grough/lilac-modules-vcv/pkg/modules/broadcast"
	"github.com/grough/lilac-modules-vcv/pkg/modules/comparator"
	"github.com/grough/lilac-modules-vcv/pkg/modules/counter"
	"github.com/grough/lilac-modules-vcv/pkg/modules/pitchgate"
	"github.com/grough/lilac-modules-vcv/pkg/modules/rounder"
	"github.com/grough/lilac-modules-vcv/pkg/modules/spray"
	"github.com/grough/lilac-modules-vcv/pkg/modules/triggerspray"
	"github.com/grough/lilac-modules-vcv/pkg/plugin"
)

// Version of the collection
const Version = "2.1.0"

var constructors = []plugin.Constructor{
	func() module.Module { return accumulator.New() },
	func() module.Module { return accumulatorsingle.New() },
	func() module.Module { return comparator.New() },
	func() module.Module { return broadcast.New() },
	func() module.Module { return spray.New() },
	func() module.Module { return triggerspray.New() },
	func() module.Module { return counter.New() },
	func() module.Module { return pitchgate.New() },
	func() module.Module { return rounder.New() },
}

// New returns the plugin with every model registered
func New() (*plugin.Plugin, error) {
	p := plugin.New(plugin.Info{
		Slug:    "Lilac",
		Name:    "Lilac",
		Version: Version,
		Author:  "Lilac Modules",
		URL:     "https://github.com/grough/lilac-modules-vcv",
	})

	for _, ctor := range constructors {
		m := ctor()
		if err := p.Add(plugin.Model{Info: m.Info(), New: ctor}); err != nil {
			return nil, fmt.Errorf("registering %s: %w", m.Info().Slug, err)
		}
	}
	return p, nil
}

// MustNew is New for package initialization; it panics on a registration error
func MustNew() *plugin.Plugin {
	p, err := New()
	if err != nil {
		panic(err)
	}
	return p
}
