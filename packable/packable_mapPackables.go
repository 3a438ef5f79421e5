package packable

import (
	"fmt"

	"github.com/quickwritereader/tracepack/access"
	"github.com/quickwritereader/tracepack/utils"
)

// PackMapStr packs a string map as a list of {key, value} text pairs in
// ascending key order, so equal maps always produce equal records.
type PackMapStr map[string]string

func (p PackMapStr) PackInto(c *access.Collector) error {
	bookmark, err := c.BeginBufferedArray()
	if err != nil {
		return err
	}
	for _, k := range utils.SortKeys(p) {
		if err := packPair(c, k, PackText(p[k])); err != nil {
			return fmt.Errorf("PackMapStr: key %q: %w", k, err)
		}
	}
	return c.EndBufferedArray(bookmark, len(p))
}

// PackMapSorted packs a map of Packable values as a list of {key, value}
// pairs after sorting its keys.
type PackMapSorted map[string]Packable

func (p PackMapSorted) PackInto(c *access.Collector) error {
	bookmark, err := c.BeginBufferedArray()
	if err != nil {
		return err
	}
	for _, k := range utils.SortKeys(p) {
		if err := packPair(c, k, p[k]); err != nil {
			return fmt.Errorf("PackMapSorted: key %q: %w", k, err)
		}
	}
	return c.EndBufferedArray(bookmark, len(p))
}

func packPair(c *access.Collector, key string, value Packable) error {
	if err := c.BeginBuffered(); err != nil {
		return err
	}
	if err := c.AddText(key); err != nil {
		return err
	}
	if err := packField(c, value); err != nil {
		return err
	}
	return c.EndBuffered()
}
