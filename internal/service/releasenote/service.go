package releasenote

import (
	"context"

	"github.com/eximdesk/exim-backend-go/internal/domain/releasenote"
)

type ReleaseNoteServiceImpl struct {
	releasenote.Repository
}

func NewReleaseNoteService(noteRepository releasenote.Repository) releasenote.ReleaseNoteService {
	return &ReleaseNoteServiceImpl{Repository: noteRepository}
}

// ListPublished implements releasenote.ReleaseNoteService.
func (s *ReleaseNoteServiceImpl) ListPublished(ctx context.Context) ([]releasenote.ReleaseNote, error) {
	return s.Repository.ListPublished(ctx)
}

// ListAll implements releasenote.ReleaseNoteService.
func (s *ReleaseNoteServiceImpl) ListAll(ctx context.Context) ([]releasenote.ReleaseNote, error) {
	return s.Repository.ListAll(ctx)
}

// Create implements releasenote.ReleaseNoteService.
func (s *ReleaseNoteServiceImpl) Create(ctx context.Context, createdBy string, req releasenote.CreateRequest) (releasenote.ReleaseNote, error) {
	if err := req.Validate(); err != nil {
		return releasenote.ReleaseNote{}, err
	}
	return s.Repository.Create(ctx, releasenote.ReleaseNote{
		Version:     req.Version,
		Title:       req.Title,
		Description: req.Description,
		Changes:     releasenote.Changes(req.Changes),
		Published:   req.Published,
		CreatedBy:   createdBy,
	})
}

// Update implements releasenote.ReleaseNoteService.
func (s *ReleaseNoteServiceImpl) Update(ctx context.Context, id string, req releasenote.UpdateRequest) (releasenote.ReleaseNote, error) {
	if err := req.Validate(); err != nil {
		return releasenote.ReleaseNote{}, err
	}

	note, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return releasenote.ReleaseNote{}, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Description != nil {
		note.Description = req.Description
	}
	if req.Changes != nil {
		note.Changes = releasenote.Changes(req.Changes)
	}
	if req.Published != nil {
		note.Published = *req.Published
	}

	if err := s.Repository.Update(ctx, note); err != nil {
		return releasenote.ReleaseNote{}, err
	}
	return note, nil
}

// Delete implements releasenote.ReleaseNoteService.
func (s *ReleaseNoteServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repository.Delete(ctx, id)
}
