// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/internal/users/auth"
	"github.com/taibuivan/sociallink/pkg/slice"
	"github.com/taibuivan/sociallink/pkg/uuid"
)

// Summary window bounds, in days.
const (
	DefaultSummaryDays = 30
	MaxSummaryDays     = 365
	topLinksLimit      = 5
)

// LinkCounter is the part of the link store the tracker needs.
type LinkCounter interface {
	IncrementClicks(context context.Context, ownerID, id string) error
	List(context context.Context, ownerID string) ([]*link.Link, error)
}

// ViewCounter increments the view counter of an owner's file or form.
type ViewCounter interface {
	IncrementViews(context context.Context, ownerID, id string) error
}

// Service records events and computes dashboard aggregates.
type Service struct {
	repository Repository
	users      auth.UserRepository
	links      LinkCounter
	files      ViewCounter
	forms      ViewCounter
	now        func() time.Time
}

// NewService constructs a new analytics [Service].
func NewService(repository Repository, users auth.UserRepository, links LinkCounter, files, forms ViewCounter) *Service {
	return &Service{
		repository: repository,
		users:      users,
		links:      links,
		files:      files,
		forms:      forms,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Repository exposes the store for the admin cascade.
func (service *Service) Repository() Repository {
	return service.repository
}

// TrackInput is one event reported by a public page.
type TrackInput struct {
	Type     Type
	UserID   string
	Username string
	LinkID   string
	FileID   string
	FormID   string
}

/*
Track records one event and bumps the matching counter.

Description: The owner is taken from UserID, or resolved from Username when no
id is given. Link, file and form targets must belong to that owner. Device and
referrer come from the request's client metadata.

Parameters:
  - context: context.Context
  - input: TrackInput

Returns:
  - error: VALIDATION_ERROR, NOT_FOUND for an unknown owner or target, or storage failures
*/
func (service *Service) Track(context context.Context, input TrackInput) error {

	// ── 1. Validate ──
	if err := validateTrack(input); err != nil {
		return err
	}

	// ── 2. Resolve owner ──
	ownerID, err := service.resolveOwner(context, input)
	if err != nil {
		return err
	}

	// ── 3. Counter, then event ──
	event := &Event{OwnerID: ownerID, Type: input.Type}
	switch input.Type {
	case TypeLinkClick:
		event.LinkID = input.LinkID
		err = service.links.IncrementClicks(context, ownerID, input.LinkID)
	case TypeFileView:
		event.FileID = input.FileID
		err = service.files.IncrementViews(context, ownerID, input.FileID)
	case TypeFormView:
		event.FormID = input.FormID
		err = service.forms.IncrementViews(context, ownerID, input.FormID)
	}
	if err != nil {
		return err
	}

	return service.record(context, event)
}

func validateTrack(input TrackInput) error {
	v := &validate.Validator{}
	v.OneOf("type", string(input.Type), Types...).
		Custom("userId", input.UserID == "" && input.Username == "", "userId or username is required")
	if input.UserID != "" {
		v.UUID("userId", input.UserID)
	}

	requireID := func(field, value string) {
		v.Required(field, value)
		if value != "" {
			v.UUID(field, value)
		}
	}
	switch input.Type {
	case TypeLinkClick:
		requireID("linkId", input.LinkID)
	case TypeFileView:
		requireID("fileId", input.FileID)
	case TypeFormView:
		requireID("formId", input.FormID)
	}
	return v.Err()
}

func (service *Service) resolveOwner(context context.Context, input TrackInput) (string, error) {
	var (
		user *auth.User
		err  error
	)
	if input.UserID != "" {
		user, err = service.users.FindByID(context, input.UserID)
	} else {
		username := strings.ToLower(strings.TrimSpace(input.Username))
		if !validate.IsUsername(username) {
			return "", apperr.NotFound("User")
		}
		user, err = service.users.FindByUsername(context, username)
	}
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.NotFound("User")
		}
		return "", err
	}
	return user.ID, nil
}

// TrackLinkClick bumps a link's counter and records the click for its owner.
func (service *Service) TrackLinkClick(context context.Context, ownerID, linkID string) error {
	if err := service.links.IncrementClicks(context, ownerID, linkID); err != nil {
		return err
	}
	return service.record(context, &Event{OwnerID: ownerID, Type: TypeLinkClick, LinkID: linkID})
}

// RecordPageView records a profile view. It has no counter.
func (service *Service) RecordPageView(context context.Context, ownerID string) error {
	return service.record(context, &Event{OwnerID: ownerID, Type: TypePageView})
}

func (service *Service) record(context context.Context, event *Event) error {
	meta := ctxutil.GetClientMeta(context)

	event.ID = uuid.New()
	event.Device = ClassifyDevice(meta.UserAgent)
	event.Referrer = ClassifyReferrer(meta.Referrer)
	event.CreatedAt = service.now()

	if err := service.repository.Append(context, event); err != nil {
		return fmt.Errorf("analytics_service_record_failed: %w", err)
	}

	ctxutil.GetLogger(context).DebugContext(context, "analytics_event_recorded",
		slog.String("user_id", event.OwnerID),
		slog.String("type", string(event.Type)),
		slog.String("device", string(event.Device)),
		slog.String("referrer", event.Referrer),
	)
	return nil
}

// DeleteByOwner removes every event of the owner.
func (service *Service) DeleteByOwner(context context.Context, ownerID string) error {
	return service.repository.DeleteByOwner(context, ownerID)
}

// # Summary

// Totals counts events per type.
type Totals struct {
	PageViews  int64 `json:"pageViews"`
	LinkClicks int64 `json:"linkClicks"`
	FileViews  int64 `json:"fileViews"`
	FormViews  int64 `json:"formViews"`
}

func (totals *Totals) add(eventType Type, count int64) {
	switch eventType {
	case TypePageView:
		totals.PageViews += count
	case TypeLinkClick:
		totals.LinkClicks += count
	case TypeFileView:
		totals.FileViews += count
	case TypeFormView:
		totals.FormViews += count
	}
}

// DailyPoint is one day of the series.
type DailyPoint struct {
	Date string `json:"date"`
	Totals
}

// Share is one row of a breakdown.
type Share struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// TopLink is a link ranked by clicks in the window.
type TopLink struct {
	LinkID string `json:"linkId"`
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

// Summary is the owner dashboard payload.
type Summary struct {
	Days             int          `json:"days"`
	Totals           Totals       `json:"totals"`
	Daily            []DailyPoint `json:"daily"`
	Devices          []Share      `json:"devices"`
	Referrers        []Share      `json:"referrers"`
	TopLinks         []TopLink    `json:"topLinks"`
	ClickThroughRate float64      `json:"clickThroughRate"`
}

/*
Summary aggregates the owner's events over the last days days, today included.

Parameters:
  - context: context.Context
  - ownerID: string
  - days: int (1 to 365)

Returns:
  - *Summary: Totals, a zero-filled daily series, breakdowns and top links
  - error: VALIDATION_ERROR or storage failures
*/
func (service *Service) Summary(context context.Context, ownerID string, days int) (*Summary, error) {
	if err := (&validate.Validator{}).Range("days", days, 1, MaxSummaryDays).Err(); err != nil {
		return nil, err
	}

	since := startOfDay(service.now()).AddDate(0, 0, -(days - 1))
	buckets, err := service.repository.Aggregate(context, ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("analytics_service_summary_failed: %w", err)
	}

	summary := &Summary{Days: days}

	// ── 1. Zero-filled series ──
	summary.Daily = make([]DailyPoint, days)
	dayIndex := make(map[string]int, days)
	for index := range summary.Daily {
		date := since.AddDate(0, 0, index).Format(time.DateOnly)
		summary.Daily[index].Date = date
		dayIndex[date] = index
	}

	// ── 2. Fold buckets ──
	devices := make(map[string]int64)
	referrers := make(map[string]int64)
	linkClicks := make(map[string]int64)
	for _, bucket := range buckets {
		summary.Totals.add(bucket.Type, bucket.Count)
		if index, found := dayIndex[bucket.Day.UTC().Format(time.DateOnly)]; found {
			summary.Daily[index].add(bucket.Type, bucket.Count)
		}
		devices[string(bucket.Device)] += bucket.Count
		referrers[bucket.Referrer] += bucket.Count
		if bucket.Type == TypeLinkClick && bucket.LinkID != "" {
			linkClicks[bucket.LinkID] += bucket.Count
		}
	}
	summary.Devices = rank(devices)
	summary.Referrers = rank(referrers)

	// ── 3. Top links ──
	summary.TopLinks, err = service.topLinks(context, ownerID, linkClicks)
	if err != nil {
		return nil, err
	}

	if summary.Totals.PageViews > 0 {
		summary.ClickThroughRate = float64(summary.Totals.LinkClicks) / float64(summary.Totals.PageViews)
	}
	return summary, nil
}

func (service *Service) topLinks(context context.Context, ownerID string, clicks map[string]int64) ([]TopLink, error) {
	top := make([]TopLink, 0)
	if len(clicks) == 0 {
		return top, nil
	}

	links, err := service.links.List(context, ownerID)
	if err != nil {
		return nil, err
	}
	clicked := slice.Filter(links, func(current *link.Link) bool { return clicks[current.ID] > 0 })
	top = slice.Map(clicked, func(current *link.Link) TopLink {
		return TopLink{LinkID: current.ID, Title: current.Title, Clicks: clicks[current.ID]}
	})

	sort.Slice(top, func(i, j int) bool {
		if top[i].Clicks != top[j].Clicks {
			return top[i].Clicks > top[j].Clicks
		}
		return top[i].Title < top[j].Title
	})
	if len(top) > topLinksLimit {
		top = top[:topLinksLimit]
	}
	return top, nil
}

// rank orders a breakdown by descending count, then label.
func rank(counts map[string]int64) []Share {
	shares := make([]Share, 0, len(counts))
	for label, count := range counts {
		shares = append(shares, Share{Label: label, Count: count})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Label < shares[j].Label
	})
	return shares
}

// PlatformTotals returns event totals across every account.
func (service *Service) PlatformTotals(context context.Context) (Totals, error) {
	counts, err := service.repository.CountByType(context)
	if err != nil {
		return Totals{}, err
	}
	var totals Totals
	for eventType, count := range counts {
		totals.add(eventType, count)
	}
	return totals, nil
}

func startOfDay(moment time.Time) time.Time {
	year, month, day := moment.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
