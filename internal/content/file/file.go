// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package file manages the files an account shares on its profile.

Content arrives inline as a data URL (or raw text). When object storage is
configured, binary content is moved to the blob store and only the key stays
in the database.
*/
package file

import (
	"encoding/base64"
	"strings"
	"time"
)

// Type classifies how a file is rendered.
type Type string

const (
	TypeFile  Type = "file"
	TypeImage Type = "image"
	TypeText  Type = "text"
)

// Types lists every accepted file type.
var Types = []string{string(TypeFile), string(TypeImage), string(TypeText)}

const (
	resourceFile    = "File"
	maxNameLength   = 200
	textMimeType    = "text/plain"
	defaultMimeType = "application/octet-stream"
)

// File is one shared asset.
type File struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"userId"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	Content    string    `json:"content,omitempty"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	Views      int64     `json:"views"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Clone returns a copy of the file.
func (f *File) Clone() *File {
	copied := *f
	return &copied
}

// Meta returns a copy without content.
func (f *File) Meta() *File {
	copied := *f
	copied.Content = ""
	return &copied
}

// DataURL is a parsed "data:<mime>;base64,<payload>" string.
type DataURL struct {
	MimeType string
	Data     []byte
}

// ParseDataURL decodes a base64 data URL. ok is false for anything else.
func ParseDataURL(value string) (DataURL, bool) {
	rest, found := strings.CutPrefix(value, "data:")
	if !found {
		return DataURL{}, false
	}
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return DataURL{}, false
	}
	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return DataURL{}, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURL{}, false
	}
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	return DataURL{MimeType: mimeType, Data: data}, true
}

// String encodes the data URL.
func (d DataURL) String() string {
	return "data:" + d.MimeType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}
