package services

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
)

// Announcement texts.
const (
	msgAnnotationSaved = "Annotation saved."
	msgVideoLoaded     = "Video loaded."
	msgParsedCleared   = "Parsed files and codebook cleared."
	msgRowAdded        = "Variable added."
	msgRowDeleted      = "Variable deleted."
	msgExported        = "Codebook exported successfully."
)

// Command is a named session transition. It never mutates its input and
// never performs side effects; requested effects are returned instead.
type Command func(domain.Session) (domain.Session, []domain.Effect, error)

// Transitions builds the commands that move a session forward.
type Transitions struct {
	encoder driven.AnnotationEncoder
	newID   func() string
}

// NewTransitions creates the command set. newID defaults to random UUIDs.
func NewTransitions(encoder driven.AnnotationEncoder, newID func() string) *Transitions {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Transitions{encoder: encoder, newID: newID}
}

// SetVideo resolves ref to a video ID and makes it current.
func (t *Transitions) SetVideo(ref string) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		id, ok := domain.ExtractVideoID(ref)
		if !ok {
			return s, nil, fmt.Errorf("%w: %q is not a YouTube URL or video ID", domain.ErrInvalidInput, ref)
		}
		next := s.Clone()
		next.VideoID = id
		return next, []domain.Effect{domain.Announce(msgVideoLoaded)}, nil
	}
}

// SaveAnnotation commits draft against the current video, records its
// Markdown as the last saved document and registers its axial category.
func (t *Transitions) SaveAnnotation(draft domain.Draft) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		if s.VideoID == "" {
			return s, nil, domain.ErrNoVideo
		}
		if draft.Timestamp < 0 || math.IsNaN(draft.Timestamp) || math.IsInf(draft.Timestamp, 0) {
			return s, nil, fmt.Errorf("%w: timestamp must be a non-negative number of seconds", domain.ErrInvalidInput)
		}

		annotation := domain.Annotation{
			ID:              t.newID(),
			VideoID:         s.VideoID,
			Timestamp:       draft.Timestamp,
			ObservationText: draft.ObservationText,
			OpenCodes:       domain.NormaliseOpenCodes(draft.OpenCodes),
			AxialCategory:   draft.AxialCategory,
			AnalyticalMemo:  draft.AnalyticalMemo,
		}

		next := s.Clone()
		next.Annotations = append(next.Annotations, annotation)
		next.LastMarkdown = t.encoder.EncodeAnnotation(annotation)
		next.AxialCategories = registerCategory(next.AxialCategories, draft.AxialCategory)
		return next, []domain.Effect{domain.Announce(msgAnnotationSaved)}, nil
	}
}

// RegisterAxialCategory adds category to the registry if it is new.
func (t *Transitions) RegisterAxialCategory(category string) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		next := s.Clone()
		next.AxialCategories = registerCategory(next.AxialCategories, category)
		return next, nil, nil
	}
}

// AddParsedDocuments appends decoded documents to the parsed set.
func (t *Transitions) AddParsedDocuments(docs []domain.ParsedDocument) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		next := s.Clone()
		next.ParsedDocuments = append(next.ParsedDocuments, docs...)
		failed := len(domain.FailedDocuments(docs))
		return next, []domain.Effect{domain.Announce(ingestSummary(len(docs)-failed, failed))}, nil
	}
}

// ReplaceParsedDocuments swaps the whole parsed set for docs.
func (t *Transitions) ReplaceParsedDocuments(docs []domain.ParsedDocument) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		next := s.Clone()
		next.ParsedDocuments = slices.Clone(docs)
		failed := len(domain.FailedDocuments(docs))
		return next, []domain.Effect{domain.Announce(ingestSummary(len(docs)-failed, failed))}, nil
	}
}

// ClearParsedDocuments empties the parsed set and the codebook together.
func (t *Transitions) ClearParsedDocuments() Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		next := s.Clone()
		next.ParsedDocuments = nil
		next.Codebook = next.Codebook.Clear()
		return next, []domain.Effect{domain.Announce(msgParsedCleared)}, nil
	}
}

// DeriveCodebook replaces the codebook with rows derived from the parsed set.
func (t *Transitions) DeriveCodebook() Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		if len(s.ParsedDocuments) == 0 {
			return s, nil, domain.ErrNoDocuments
		}
		rows := DeriveRows(s.ParsedDocuments, t.newID)
		next := s.Clone()
		next.Codebook = next.Codebook.ReplaceDerived(rows)
		return next, []domain.Effect{domain.Announce(derivedSummary(len(rows)))}, nil
	}
}

// AddRow appends an empty deductive row with id.
func (t *Transitions) AddRow(id string) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		next := s.Clone()
		next.Codebook = next.Codebook.AddManual(id)
		return next, []domain.Effect{domain.Announce(msgRowAdded)}, nil
	}
}

// UpdateRow merges patch into the row with id. Unknown IDs are a no-op.
func (t *Transitions) UpdateRow(id string, patch domain.RowPatch) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		next := s.Clone()
		next.Codebook = next.Codebook.Update(id, patch)
		return next, nil, nil
	}
}

// DeleteRow removes the row with id. Unknown IDs are a no-op.
func (t *Transitions) DeleteRow(id string) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		if _, ok := s.Codebook.Get(id); !ok {
			return s, nil, nil
		}
		next := s.Clone()
		next.Codebook = next.Codebook.Delete(id)
		return next, []domain.Effect{domain.Announce(msgRowDeleted)}, nil
	}
}

// NewID returns a fresh identifier from the configured generator.
func (t *Transitions) NewID() string {
	return t.newID()
}

// registerCategory appends the trimmed category unless it is blank or
// already present.
func registerCategory(categories []string, category string) []string {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" || slices.Contains(categories, trimmed) {
		return categories
	}
	next := make([]string, len(categories), len(categories)+1)
	copy(next, categories)
	return append(next, trimmed)
}
