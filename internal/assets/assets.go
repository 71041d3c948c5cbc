// Package assets names the target and draggable images of each phase and
// locates them on disk.
package assets

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"svw.info/pairing/internal/domain"
)

// PerPhase is the number of targets (and draggables) shown in a phase.
const PerPhase = 6

// DefaultDir is the image directory looked up when none is configured.
const DefaultDir = "images"

// PhaseSet is the fixed target set and draggable pool of one logical phase.
type PhaseSet struct {
	Targets    []domain.Item
	Draggables []domain.Item
}

// DefaultSets returns phase 0 = target1..6 / pair1..6 and
// phase 1 = target7..12 / pair7..12.
func DefaultSets() [domain.PhaseCount]PhaseSet {
	var sets [domain.PhaseCount]PhaseSet
	for p := range sets {
		for n := p*PerPhase + 1; n <= (p+1)*PerPhase; n++ {
			sets[p].Targets = append(sets[p].Targets, domain.Item(fmt.Sprintf("target%d", n)))
			sets[p].Draggables = append(sets[p].Draggables, domain.Item(fmt.Sprintf("pair%d", n)))
		}
	}
	return sets
}

var stemRe = regexp.MustCompile(`^[A-Za-z]+\d+`)

// ExtractName returns the identifier of an image path: the leading
// letters-plus-digits token of its base name ("images/pair11.png" -> "pair11").
// Names that do not follow the convention come back as the whole base name.
func ExtractName(name string) domain.Item {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" {
		return domain.Item(name)
	}
	if m := stemRe.FindString(base); m != "" {
		return domain.Item(m)
	}
	return domain.Item(base)
}

// FileName is the image file an item is loaded from.
func FileName(item domain.Item) string { return string(item) + ".png" }

// ResolveRoot returns the absolute image directory. A configured dir wins;
// otherwise an images directory next to the executable is preferred over one
// in the working directory, so bundled builds find their assets.
func ResolveRoot(dir string) (string, error) {
	if dir != "" {
		return filepath.Abs(dir)
	}
	if exe, err := os.Executable(); err == nil {
		cand := filepath.Join(filepath.Dir(exe), DefaultDir)
		if st, err := os.Stat(cand); err == nil && st.IsDir() {
			return cand, nil
		}
	}
	return filepath.Abs(DefaultDir)
}

// Verify lists the image files of sets missing under root.
func Verify(root string, sets [domain.PhaseCount]PhaseSet) []string {
	var missing []string
	for _, s := range sets {
		for _, list := range [][]domain.Item{s.Targets, s.Draggables} {
			for _, it := range list {
				p := filepath.Join(root, FileName(it))
				if _, err := os.Stat(p); err != nil {
					missing = append(missing, p)
				}
			}
		}
	}
	return missing
}

// Contains reports whether name is one of the images of sets. It guards the
// image route against arbitrary file reads.
func Contains(sets [domain.PhaseCount]PhaseSet, name string) bool {
	for _, s := range sets {
		for _, list := range [][]domain.Item{s.Targets, s.Draggables} {
			for _, it := range list {
				if FileName(it) == name {
					return true
				}
			}
		}
	}
	return false
}
