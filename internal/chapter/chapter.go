package chapter

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// Chapter is one stop of the travel narrative. List order is narrative order.
type Chapter struct {
	Name   string   `toml:"name" json:"name"`
	Lon    float64  `toml:"lon" json:"lon"`
	Lat    float64  `toml:"lat" json:"lat"`
	Period string   `toml:"period" json:"period"`
	Color  string   `toml:"color" json:"color"`
	Places []string `toml:"places" json:"places"`
}

// Defaults returns the built-in chapter list.
func Defaults() []Chapter {
	return []Chapter{
		{
			Name: "London, UK", Lon: -0.1276, Lat: 51.5072,
			Period: "2016 - 2018", Color: "#3B82F6",
			Places: []string{"Camden", "Greenwich", "Oxford", "Edinburgh"},
		},
		{
			Name: "Sicily, Italy", Lon: 14.0154, Lat: 37.5999,
			Period: "Summer 2018", Color: "#F59E0B",
			Places: []string{"Palermo", "Cefalù", "Taormina", "Mount Etna", "Syracuse"},
		},
		{
			Name: "Istanbul, Turkey", Lon: 28.9784, Lat: 41.0082,
			Period: "2019", Color: "#EF4444",
			Places: []string{"Sultanahmet", "Kadıköy", "Princes' Islands", "Cappadocia"},
		},
		{
			Name: "Dubai, UAE", Lon: 55.2708, Lat: 25.2048,
			Period: "2020 - 2021", Color: "#10B981",
			Places: []string{"Deira", "Al Fahidi", "Abu Dhabi", "Hatta"},
		},
		{
			Name: "Mumbai, India", Lon: 72.8777, Lat: 19.076,
			Period: "2022", Color: "#8B5CF6",
			Places: []string{"Colaba", "Bandra", "Elephanta Caves", "Goa", "Jaipur"},
		},
	}
}

type file struct {
	Chapters []Chapter `toml:"chapter"`
}

// Load reads chapters from the [[chapter]] tables of a TOML file.
func Load(path string) ([]Chapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chapters: %w", err)
	}
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("decoding chapters: %w", err)
	}
	if err := Validate(f.Chapters); err != nil {
		return nil, err
	}
	return f.Chapters, nil
}

// Validate checks that every chapter has a name and names are unique.
func Validate(chs []Chapter) error {
	seen := make(map[string]bool, len(chs))
	for i, ch := range chs {
		if ch.Name == "" {
			return fmt.Errorf("chapter %d: missing name", i)
		}
		if seen[ch.Name] {
			return fmt.Errorf("chapter %q: duplicate name", ch.Name)
		}
		seen[ch.Name] = true
	}
	return nil
}

// ErrNotFound is returned by Find for unknown names.
var ErrNotFound = errors.New("chapter not found")

// Find returns the chapter named name.
func Find(chs []Chapter, name string) (Chapter, error) {
	i := slices.IndexFunc(chs, func(c Chapter) bool { return c.Name == name })
	if i < 0 {
		return Chapter{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return chs[i], nil
}

// Clone deep-copies a chapter list.
func Clone(chs []Chapter) []Chapter {
	out := make([]Chapter, len(chs))
	for i, ch := range chs {
		ch.Places = slices.Clone(ch.Places)
		out[i] = ch
	}
	return out
}
