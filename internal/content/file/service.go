// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/blob"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/pkg/uuid"
)

// Service implements owner-scoped file management.
type Service struct {
	repository Repository
	blobs      blob.Store
	plans      policy.PlanResolver
	evaluator  *policy.Evaluator
}

// NewService constructs a new file [Service]. A nil blob store keeps all content inline.
func NewService(repository Repository, blobs blob.Store, plans policy.PlanResolver, evaluator *policy.Evaluator) *Service {
	return &Service{repository: repository, blobs: blobs, plans: plans, evaluator: evaluator}
}

// CreateInput holds an uploaded file.
type CreateInput struct {
	Name     string
	Type     Type
	Content  string
	MimeType string
}

// List returns the owner's file metadata.
func (service *Service) List(context context.Context, ownerID string) ([]*File, error) {
	return service.repository.ListByOwner(context, ownerID)
}

/*
Create stores a new file for the owner.

Description: Binary content must be a base64 data URL; text content is stored
as is. Size counts decoded bytes and is checked against the owner's plan.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *File: The stored file metadata
  - error: VALIDATION_ERROR, PLAN_LIMIT_REACHED or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*File, error) {

	// ── 1. Validate and measure ──
	file := &File{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    strings.TrimSpace(input.Name),
		Type:    input.Type,
	}

	v := &validate.Validator{}
	v.Required("name", file.Name).
		MaxLen("name", file.Name, maxNameLength).
		OneOf("type", string(input.Type), Types...).
		Required("content", input.Content)

	var decoded DataURL
	if input.Type == TypeText {
		file.Content = input.Content
		file.MimeType = textMimeType
		file.Size = int64(len(input.Content))
	} else if input.Content != "" {
		parsed, ok := ParseDataURL(input.Content)
		v.Custom("content", !ok, "Must be a base64 data URL")
		v.Custom("content", ok && input.Type == TypeImage && !strings.HasPrefix(parsed.MimeType, "image/"), "Must be an image")
		decoded = parsed
		file.Content = input.Content
		file.MimeType = parsed.MimeType
		file.Size = int64(len(parsed.Data))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if mimeType := strings.TrimSpace(input.MimeType); mimeType != "" && input.Type != TypeText {
		file.MimeType = mimeType
		decoded.MimeType = mimeType
	}

	// ── 2. Plan limits ──
	plan, err := service.plans.EffectivePlan(context, ownerID)
	if err != nil {
		return nil, err
	}
	if err := service.evaluator.CheckFileSize(plan, file.Size); err != nil {
		return nil, err
	}
	count, err := service.repository.CountByOwner(context, ownerID)
	if err != nil {
		return nil, fmt.Errorf("file_service_count_failed: %w", err)
	}
	if err := service.evaluator.CheckCreate(plan, policy.ResourceFile, count); err != nil {
		return nil, err
	}

	// ── 3. Move binary content to object storage ──
	if service.blobs != nil && file.Type != TypeText {
		file.StorageKey = storageKey(ownerID, file.ID)
		if err := service.blobs.Put(context, file.StorageKey, blob.Object{Body: decoded.Data, ContentType: file.MimeType}); err != nil {
			return nil, fmt.Errorf("file_service_blob_put_failed: %w", err)
		}
		file.Content = ""
	}

	// ── 4. Persist ──
	if err := service.repository.Create(context, file); err != nil {
		service.deleteBlob(context, file.StorageKey)
		return nil, fmt.Errorf("file_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "file_created",
		slog.String("file_id", file.ID),
		slog.Int64("size", file.Size),
		slog.Bool("object_storage", file.StorageKey != ""),
	)
	return file.Meta(), nil
}

func storageKey(ownerID, fileID string) string {
	return "files/" + ownerID + "/" + fileID
}

/*
View returns a file with its content and counts one view.

Description: Every call increments the counter; there is no deduplication.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *File: The file with inline content
  - error: NOT_FOUND or storage failures
*/
func (service *Service) View(context context.Context, id string) (*File, error) {
	file, err := service.repository.FindPublic(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.repository.IncrementViews(context, file.OwnerID, file.ID); err != nil {
		return nil, fmt.Errorf("file_service_increment_failed: %w", err)
	}
	file.Views++

	if file.StorageKey != "" && service.blobs != nil {
		object, err := service.blobs.Get(context, file.StorageKey)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				ctxutil.GetLogger(context).WarnContext(context, "file_blob_missing", slog.String("file_id", file.ID))
				return file, nil
			}
			return nil, fmt.Errorf("file_service_blob_get_failed: %w", err)
		}
		file.Content = DataURL{MimeType: file.MimeType, Data: object.Body}.String()
	}
	return file, nil
}

// IncrementViews counts one view of one of the owner's files.
func (service *Service) IncrementViews(context context.Context, ownerID, id string) error {
	return service.repository.IncrementViews(context, ownerID, id)
}

// Delete removes one of the owner's files and its blob.
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	file, err := service.repository.FindByID(context, ownerID, id)
	if err != nil {
		return err
	}
	if err := service.repository.Delete(context, ownerID, id); err != nil {
		return err
	}
	service.deleteBlob(context, file.StorageKey)

	ctxutil.GetLogger(context).InfoContext(context, "file_deleted", slog.String("file_id", id))
	return nil
}

// DeleteAllForOwner removes every file of an account together with its blobs.
func (service *Service) DeleteAllForOwner(context context.Context, ownerID string) error {
	files, err := service.repository.ListByOwner(context, ownerID)
	if err != nil {
		return err
	}
	for _, file := range files {
		service.deleteBlob(context, file.StorageKey)
	}
	return service.repository.DeleteByOwner(context, ownerID)
}

// deleteBlob removes a stored object. Failures leave an orphan and are only logged.
func (service *Service) deleteBlob(context context.Context, key string) {
	if key == "" || service.blobs == nil {
		return
	}
	if err := service.blobs.Delete(context, key); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "file_blob_delete_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
