// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package theme holds the static catalog of public page themes and resolves a
// theme id plus optional color overrides into a rendering bundle.
//
// # Architecture
//
// Pure data. Nothing here touches storage or knows about plans; access rules
// live in the policy package.
package theme

import (
	"slices"

	"github.com/taibuivan/sociallink/internal/platform/validate"
)

// ButtonStyle is the corner treatment of link buttons.
type ButtonStyle string

const (
	ButtonRounded ButtonStyle = "rounded"
	ButtonPill    ButtonStyle = "pill"
	ButtonSharp   ButtonStyle = "sharp"
)

// Colors is the palette a public page is painted with.
type Colors struct {
	Background       string `json:"background"`
	Text             string `json:"text"`
	Accent           string `json:"accent"`
	ButtonBackground string `json:"buttonBackground"`
	ButtonText       string `json:"buttonText"`
}

// Theme is one catalog entry.
type Theme struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Premium     bool        `json:"premium"`
	Colors      Colors      `json:"colors"`
	Font        string      `json:"font"`
	ButtonStyle ButtonStyle `json:"buttonStyle"`
}

// Bundle is what a public page renders with: the theme's id plus its resolved
// palette, font and button style.
type Bundle struct {
	ThemeID     string      `json:"themeId"`
	Colors      Colors      `json:"colors"`
	Font        string      `json:"font"`
	ButtonStyle ButtonStyle `json:"buttonStyle"`
}

// catalog is ordered; the first entry is the fallback for unknown ids.
var catalog = []Theme{
	{
		ID: "default", Name: "Default",
		Colors: Colors{Background: "#ffffff", Text: "#111827", Accent: "#6366f1", ButtonBackground: "#111827", ButtonText: "#ffffff"},
		Font:   "Inter", ButtonStyle: ButtonRounded,
	},
	{
		ID: "midnight", Name: "Midnight",
		Colors: Colors{Background: "#0f172a", Text: "#f8fafc", Accent: "#38bdf8", ButtonBackground: "#1e293b", ButtonText: "#f8fafc"},
		Font:   "Inter", ButtonStyle: ButtonRounded,
	},
	{
		ID: "paper", Name: "Paper",
		Colors: Colors{Background: "#faf7f2", Text: "#292524", Accent: "#b45309", ButtonBackground: "#ffffff", ButtonText: "#292524"},
		Font:   "Merriweather", ButtonStyle: ButtonSharp,
	},
	{
		ID: "mint", Name: "Mint",
		Colors: Colors{Background: "#ecfdf5", Text: "#064e3b", Accent: "#10b981", ButtonBackground: "#10b981", ButtonText: "#ffffff"},
		Font:   "Poppins", ButtonStyle: ButtonPill,
	},
	{
		ID: "sunset", Name: "Sunset", Premium: true,
		Colors: Colors{Background: "#fff7ed", Text: "#7c2d12", Accent: "#f97316", ButtonBackground: "#ea580c", ButtonText: "#ffffff"},
		Font:   "Poppins", ButtonStyle: ButtonPill,
	},
	{
		ID: "neon", Name: "Neon", Premium: true,
		Colors: Colors{Background: "#09090b", Text: "#fafafa", Accent: "#a3e635", ButtonBackground: "#a3e635", ButtonText: "#09090b"},
		Font:   "Space Grotesk", ButtonStyle: ButtonSharp,
	},
	{
		ID: "aurora", Name: "Aurora", Premium: true,
		Colors: Colors{Background: "#1e1b4b", Text: "#eef2ff", Accent: "#c084fc", ButtonBackground: "#4c1d95", ButtonText: "#eef2ff"},
		Font:   "Outfit", ButtonStyle: ButtonRounded,
	},
}

// Catalog returns a copy of every theme in display order.
func Catalog() []Theme {
	return slices.Clone(catalog)
}

// Default returns the fallback theme.
func Default() Theme {
	return catalog[0]
}

// Find looks a theme up by id.
func Find(id string) (Theme, bool) {
	for _, entry := range catalog {
		if entry.ID == id {
			return entry, true
		}
	}
	return Theme{}, false
}

// Resolve maps id to its bundle, falling back to [Default] for unknown ids, then
// applies customBackground and customAccent when they are valid hex colors.
func Resolve(id, customBackground, customAccent string) Bundle {
	entry, found := Find(id)
	if !found {
		entry = Default()
	}

	bundle := Bundle{
		ThemeID:     entry.ID,
		Colors:      entry.Colors,
		Font:        entry.Font,
		ButtonStyle: entry.ButtonStyle,
	}

	if validate.IsHexColor(customBackground) {
		bundle.Colors.Background = customBackground
	}
	if validate.IsHexColor(customAccent) {
		bundle.Colors.Accent = customAccent
	}

	return bundle
}
