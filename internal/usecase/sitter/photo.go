package sitter

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/auth"
	domain "github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/dto"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/media"
)

type PhotoStore interface {
	PutPhoto(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type PhotoProcessor interface {
	Normalize(r io.Reader) ([]byte, error)
}

type UploadPhoto struct {
	repo      domain.Repository
	store     PhotoStore
	processor PhotoProcessor
	audit     *audit.Dispatcher
}

// NewUploadPhoto accepts a nil store; uploads then report the feature as
// unavailable.
func NewUploadPhoto(
	repo domain.Repository,
	store PhotoStore,
	processor PhotoProcessor,
	audit *audit.Dispatcher,
) *UploadPhoto {
	return &UploadPhoto{repo: repo, store: store, processor: processor, audit: audit}
}

func (uc *UploadPhoto) Execute(
	ctx context.Context,
	caller auth.Identity,
	profileID uint,
	photo io.Reader,
) (*dto.SitterView, error) {

	if uc.store == nil {
		return nil, httperr.Unavailable("photo_storage_disabled", "photo uploads are not configured")
	}

	p, err := loadOwned(ctx, uc.repo, caller, profileID)
	if err != nil {
		return nil, err
	}

	body, err := uc.processor.Normalize(photo)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("sitters/%d/%s%s", p.ID, uuid.NewString(), media.Extension)
	url, err := uc.store.PutPhoto(ctx, key, body, media.ContentType)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SetPhotoURL(ctx, p.ID, url); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &caller.UserID,
		Action:    "photo_updated",
		Entity:    "sitter_profile",
		EntityID:  &p.ID,
		RequestID: audit.RequestID(ctx),
		Metadata:  map[string]any{"key": key, "bytes": len(body)},
	})

	return NewGetSitter(uc.repo).Execute(ctx, p.ID)
}
