// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package link manages the actionable items shown on a public profile.

Every link carries a type-specific [Variant]; the JSON form is flat, with the
"type" field selecting which variant fields are present.
*/
package link

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taibuivan/sociallink/internal/platform/validate"
)

// Type discriminates the link variants.
type Type string

const (
	TypeLink    Type = "link"
	TypeButton  Type = "button"
	TypeVideo   Type = "video"
	TypeMusic   Type = "music"
	TypeGallery Type = "gallery"
	TypeCrypto  Type = "crypto"
	TypeSocial  Type = "social"
)

// Types lists every accepted link type.
var Types = []string{
	string(TypeLink), string(TypeButton), string(TypeVideo), string(TypeMusic),
	string(TypeGallery), string(TypeCrypto), string(TypeSocial),
}

const (
	maxTitleLength   = 100
	maxGalleryImages = 12
)

// Link is one item on a profile page.
type Link struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"userId"`
	Title     string    `json:"title"`
	Type      Type      `json:"type"`
	Variant   Variant   `json:"-"`
	Visible   bool      `json:"visible"`
	Spotlight bool      `json:"spotlight"`
	Order     int       `json:"order"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarshalJSON flattens the variant fields into the link object.
func (link Link) MarshalJSON() ([]byte, error) {
	type plain Link
	head, err := json.Marshal(plain(link))
	if err != nil {
		return nil, err
	}
	if link.Variant == nil {
		return head, nil
	}
	payload, err := json.Marshal(link.Variant)
	if err != nil {
		return nil, err
	}
	return mergeObjects(head, payload)
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (link *Link) Clone() *Link {
	copied := *link
	if gallery, ok := link.Variant.(GalleryVariant); ok {
		copied.Variant = GalleryVariant{Images: append([]string(nil), gallery.Images...)}
	}
	return &copied
}

// Totals aggregates link activity for an account.
type Totals struct {
	Links  int   `json:"links"`
	Clicks int64 `json:"clicks"`
}

// # Variants

// Variant carries the fields that only make sense for one link type.
type Variant interface {
	Kind() Type
	Validate(v *validate.Validator)
}

// LinkVariant is a plain outbound link.
type LinkVariant struct {
	URL string `json:"url"`
}

func (LinkVariant) Kind() Type { return TypeLink }

func (variant LinkVariant) Validate(v *validate.Validator) {
	v.Required("url", variant.URL).URL("url", variant.URL)
}

// ButtonVariant is an outbound link rendered as a call-to-action button.
type ButtonVariant struct {
	URL string `json:"url"`
}

func (ButtonVariant) Kind() Type { return TypeButton }

func (variant ButtonVariant) Validate(v *validate.Validator) {
	v.Required("url", variant.URL).URL("url", variant.URL)
}

// VideoVariant embeds a video player.
type VideoVariant struct {
	VideoURL string `json:"videoUrl"`
}

func (VideoVariant) Kind() Type { return TypeVideo }

func (variant VideoVariant) Validate(v *validate.Validator) {
	v.Required("videoUrl", variant.VideoURL).URL("videoUrl", variant.VideoURL)
}

// MusicVariant embeds an audio player.
type MusicVariant struct {
	MusicURL string `json:"musicUrl"`
}

func (MusicVariant) Kind() Type { return TypeMusic }

func (variant MusicVariant) Validate(v *validate.Validator) {
	v.Required("musicUrl", variant.MusicURL).URL("musicUrl", variant.MusicURL)
}

// GalleryVariant shows a set of images.
type GalleryVariant struct {
	Images []string `json:"images"`
}

func (GalleryVariant) Kind() Type { return TypeGallery }

func (variant GalleryVariant) Validate(v *validate.Validator) {
	v.Custom("images", len(variant.Images) == 0, "At least one image is required").
		Custom("images", len(variant.Images) > maxGalleryImages, fmt.Sprintf("Maximum %d images", maxGalleryImages))
	for index, image := range variant.Images {
		v.URL(fmt.Sprintf("images[%d]", index), image)
	}
}

// CryptoVariant shows a wallet address for tips.
type CryptoVariant struct {
	Network string `json:"network"`
	Address string `json:"cryptoAddress"`
}

func (CryptoVariant) Kind() Type { return TypeCrypto }

func (variant CryptoVariant) Validate(v *validate.Validator) {
	v.Required("cryptoAddress", variant.Address).
		MaxLen("cryptoAddress", variant.Address, 128).
		MaxLen("network", variant.Network, 30)
}

// SocialVariant points at a profile on a social platform.
type SocialVariant struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func (SocialVariant) Kind() Type { return TypeSocial }

func (variant SocialVariant) Validate(v *validate.Validator) {
	v.Required("platform", variant.Platform).
		MaxLen("platform", variant.Platform, 30).
		Required("url", variant.URL).
		URL("url", variant.URL)
}

// DecodeVariant reads the variant for kind out of a JSON object. Unrelated keys are ignored.
func DecodeVariant(kind Type, raw []byte) (Variant, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch kind {
	case TypeLink:
		return decodeInto[LinkVariant](raw)
	case TypeButton:
		return decodeInto[ButtonVariant](raw)
	case TypeVideo:
		return decodeInto[VideoVariant](raw)
	case TypeMusic:
		return decodeInto[MusicVariant](raw)
	case TypeGallery:
		return decodeInto[GalleryVariant](raw)
	case TypeCrypto:
		return decodeInto[CryptoVariant](raw)
	case TypeSocial:
		return decodeInto[SocialVariant](raw)
	default:
		return nil, fmt.Errorf("unknown link type %q", kind)
	}
}

// PatchVariant applies the variant keys in raw on top of current. A change of
// kind starts from an empty variant.
func PatchVariant(current Variant, kind Type, raw []byte) (Variant, error) {
	base := []byte("{}")
	if current != nil && current.Kind() == kind {
		encoded, err := json.Marshal(current)
		if err != nil {
			return nil, err
		}
		base = encoded
	}
	merged, err := mergeObjects(base, raw)
	if err != nil {
		return nil, err
	}
	return DecodeVariant(kind, merged)
}

func decodeInto[T Variant](raw []byte) (Variant, error) {
	var variant T
	if err := json.Unmarshal(raw, &variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// mergeObjects overlays the keys of top on base. Both must be JSON objects.
func mergeObjects(base, top []byte) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	overlay := map[string]json.RawMessage{}
	if err := json.Unmarshal(top, &overlay); err != nil {
		return nil, err
	}
	for key, value := range overlay {
		fields[key] = value
	}
	return json.Marshal(fields)
}
