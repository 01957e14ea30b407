// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package analytics records page views, link clicks, file views and form views,
and aggregates them for the owner dashboard.

Events are append-only. Every aggregate is computed on read.
*/
package analytics

import (
	"net/url"
	"strings"
	"time"
)

// # Event Types

// Type is the kind of interaction an event records.
type Type string

const (
	TypePageView  Type = "pageView"
	TypeLinkClick Type = "linkClick"
	TypeFileView  Type = "fileView"
	TypeFormView  Type = "formView"
)

// Types lists every accepted event type.
var Types = []string{string(TypePageView), string(TypeLinkClick), string(TypeFileView), string(TypeFormView)}

const resourceEvent = "Analytics event"

// Event is one recorded interaction.
type Event struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"userId"`
	Type      Type      `json:"type"`
	LinkID    string    `json:"linkId,omitempty"`
	FileID    string    `json:"fileId,omitempty"`
	FormID    string    `json:"formId,omitempty"`
	Device    Device    `json:"device"`
	Referrer  string    `json:"referrer"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Classification

// Device is the coarse client class derived from the User-Agent.
type Device string

const (
	DeviceMobile  Device = "Mobile"
	DeviceTablet  Device = "Tablet"
	DeviceDesktop Device = "Desktop"
)

var mobileSignals = []string{"mobile", "android", "iphone", "ipad", "ipod", "tablet", "blackberry", "opera mini", "iemobile"}

// ClassifyDevice maps a User-Agent header to a [Device].
func ClassifyDevice(userAgent string) Device {
	agent := strings.ToLower(userAgent)

	mobile := false
	for _, signal := range mobileSignals {
		if strings.Contains(agent, signal) {
			mobile = true
			break
		}
	}

	switch {
	case mobile && (strings.Contains(agent, "ipad") || strings.Contains(agent, "tablet")):
		return DeviceTablet
	case mobile:
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// ReferrerDirect labels visits without a usable Referer header.
const ReferrerDirect = "Direct"

// referrerSources match brand names anywhere in the host and short domains
// only as the host itself or one of its parent domains.
var referrerSources = []struct {
	label   string
	needles []string
	domains []string
}{
	{"Instagram", []string{"instagram"}, nil},
	{"Twitter", []string{"twitter"}, []string{"x.com", "t.co"}},
	{"Facebook", []string{"facebook"}, []string{"fb.com", "fb.me", "fb.watch"}},
	{"LinkedIn", []string{"linkedin"}, []string{"lnkd.in"}},
	{"YouTube", []string{"youtube"}, []string{"youtu.be"}},
	{"TikTok", []string{"tiktok"}, nil},
	{"Google", []string{"google"}, nil},
}

func onDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// ClassifyReferrer maps a Referer header to a source label. Known networks get
// their brand name, other hosts are returned without a leading "www.".
func ClassifyReferrer(referrer string) string {
	if referrer == "" {
		return ReferrerDirect
	}
	parsed, err := url.Parse(referrer)
	if err != nil || parsed.Hostname() == "" {
		return ReferrerDirect
	}

	host := strings.ToLower(parsed.Hostname())
	for _, source := range referrerSources {
		for _, needle := range source.needles {
			if strings.Contains(host, needle) {
				return source.label
			}
		}
		for _, domain := range source.domains {
			if onDomain(host, domain) {
				return source.label
			}
		}
	}
	return strings.TrimPrefix(host, "www.")
}
