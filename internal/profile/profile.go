// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile assembles the public page of an account.

A username always resolves to something: a real account renders its own
content, an unknown or blocked one renders a placeholder page so shared links
never dead-end.
*/
package profile

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/catalog/theme"
	"github.com/taibuivan/sociallink/internal/content/file"
	"github.com/taibuivan/sociallink/internal/content/form"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/content/pagesettings"
)

// brandName suffixes default page titles.
const brandName = "SocialLink"

// SEO is the resolved metadata of a public page.
type SEO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords"`
	OGImage      string `json:"ogImage"`
	CanonicalURL string `json:"canonicalUrl"`
}

// Profile is the public view of an account.
type Profile struct {
	Name         string                `json:"name"`
	Username     string                `json:"username"`
	Bio          string                `json:"bio"`
	Avatar       string                `json:"avatar"`
	Website      string                `json:"website"`
	Plan         policy.Plan           `json:"plan"`
	ShowBranding bool                  `json:"showBranding"`
	IsDemo       bool                  `json:"isDemo"`
	Links        []*link.Link          `json:"links"`
	Files        []*file.File          `json:"files"`
	Forms        []*form.Form          `json:"forms"`
	Theme        theme.Bundle          `json:"theme"`
	SEO          SEO                   `json:"seo"`
	Socials      []pagesettings.Social `json:"socials"`
}

// displayName derives a readable name from a username: "jane.doe" becomes "Jane Doe".
func displayName(username string) string {
	words := strings.FieldsFunc(username, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(words) == 0 {
		return username
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// placeholder builds the deterministic page shown for usernames without a live account.
func placeholder(username, baseURL string) *Profile {
	name := displayName(username)
	demoLinks := []struct {
		title   string
		variant link.Variant
	}{
		{"My Website", link.LinkVariant{URL: "https://example.com"}},
		{"Latest Video", link.VideoVariant{VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}},
		{"Follow me", link.SocialVariant{Platform: "instagram", URL: "https://instagram.com/" + username}},
		{"Get in touch", link.ButtonVariant{URL: "https://example.com/contact"}},
	}

	links := make([]*link.Link, 0, len(demoLinks))
	for index, demo := range demoLinks {
		links = append(links, &link.Link{
			ID:      fmt.Sprintf("demo-%d", index+1),
			Title:   demo.title,
			Type:    demo.variant.Kind(),
			Variant: demo.variant,
			Visible: true,
			Order:   index,
		})
	}

	bio := fmt.Sprintf("This is a preview of %s's page. Claim it on %s.", name, brandName)
	return &Profile{
		Name:         name,
		Username:     username,
		Bio:          bio,
		Plan:         policy.PlanFree,
		ShowBranding: true,
		IsDemo:       true,
		Links:        links,
		Files:        []*file.File{},
		Forms:        []*form.Form{},
		Theme:        theme.Resolve(theme.Default().ID, "", ""),
		SEO: SEO{
			Title:        name + " | " + brandName,
			Description:  bio,
			CanonicalURL: baseURL + "/" + username,
		},
		Socials: []pagesettings.Social{},
	}
}
