// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagesettings stores the per-account page customization: theme,
// custom colors, SEO metadata and social links.
package pagesettings

import (
	"slices"
	"time"
)

const (
	resourceSettings = "Page settings"
	maxSocials       = 20
)

// SEO is the metadata rendered into the public page head.
type SEO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords"`
	OGImage      string `json:"ogImage"`
	CanonicalURL string `json:"canonicalUrl"`
}

// Social is a platform icon link shown under the bio.
type Social struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Settings is the customization of one account's page.
type Settings struct {
	OwnerID          string    `json:"-"`
	ThemeID          string    `json:"themeId"`
	CustomBackground string    `json:"customBackground"`
	CustomAccent     string    `json:"customAccent"`
	SEO              SEO       `json:"seo"`
	Socials          []Social  `json:"socials"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	copied := *s
	copied.Socials = slices.Clone(s.Socials)
	if copied.Socials == nil {
		copied.Socials = []Social{}
	}
	return &copied
}
