package services

import (
	"context"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
	"github.com/simlab-siue/methodosync/internal/logger"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService drives phase 1.
type AnnotationService struct {
	workspace   *Workspace
	transitions *Transitions
	encoder     driven.AnnotationEncoder
}

// NewAnnotationService creates a new annotation service.
func NewAnnotationService(
	workspace *Workspace,
	transitions *Transitions,
	encoder driven.AnnotationEncoder,
) *AnnotationService {
	return &AnnotationService{
		workspace:   workspace,
		transitions: transitions,
		encoder:     encoder,
	}
}

// Session returns the current session.
func (s *AnnotationService) Session(ctx context.Context) (domain.Session, error) {
	return s.workspace.Session(ctx)
}

// SetVideo loads a video by URL or bare ID.
func (s *AnnotationService) SetVideo(ctx context.Context, ref string) (driving.Result, error) {
	res, err := s.workspace.Apply(ctx, s.transitions.SetVideo(ref))
	if err != nil {
		return res, err
	}
	logger.Debug("video set to %s", res.Session.VideoID)
	return res, nil
}

// SaveAnnotation commits a draft against the current video.
func (s *AnnotationService) SaveAnnotation(ctx context.Context, draft domain.Draft) (driving.Result, error) {
	res, err := s.workspace.Apply(ctx, s.transitions.SaveAnnotation(draft))
	if err != nil {
		return res, err
	}
	logger.Debug("saved annotation %d for %s at %.1fs",
		len(res.Session.Annotations), res.Session.VideoID, draft.Timestamp)
	return res, nil
}

// RegisterAxialCategory adds a category to the registry.
func (s *AnnotationService) RegisterAxialCategory(ctx context.Context, category string) (driving.Result, error) {
	return s.workspace.Apply(ctx, s.transitions.RegisterAxialCategory(category))
}

// ExportSession renders the current video's annotations as one document.
// Returns the empty string when the video has no annotations yet.
func (s *AnnotationService) ExportSession(ctx context.Context) (string, error) {
	session, err := s.workspace.Session(ctx)
	if err != nil {
		return "", err
	}
	if session.VideoID == "" {
		return "", domain.ErrNoVideo
	}
	annotations := session.AnnotationsForVideo(session.VideoID)
	logger.Debug("exporting %d annotations for %s", len(annotations), session.VideoID)
	return s.encoder.EncodeSession(session.VideoID, annotations), nil
}

// Reset discards the whole session.
func (s *AnnotationService) Reset(ctx context.Context) error {
	return s.workspace.Reset(ctx)
}
