package domain

import (
	"fmt"
	"slices"
)

// Session is the complete working state of one analyst session.
//
// Sessions are treated as immutable values: transitions build a new
// Session instead of mutating slices in place, so a Session read from a
// store can be handed to several consumers safely.
type Session struct {
	// VideoID is the currently loaded video; empty until one is set.
	VideoID string

	// Annotations are the saved phase 1 annotations in save order.
	Annotations []Annotation

	// AxialCategories is the registry of categories used so far.
	AxialCategories []string

	// ParsedDocuments are decoded uploads, including failed ones.
	ParsedDocuments []ParsedDocument

	// Codebook holds the phase 2 rows.
	Codebook Codebook

	// LastMarkdown is the encoded form of the most recently saved annotation.
	LastMarkdown string
}

// Clone returns a deep copy of the session's slices.
func (s Session) Clone() Session {
	out := s
	out.Annotations = slices.Clone(s.Annotations)
	out.AxialCategories = slices.Clone(s.AxialCategories)
	out.ParsedDocuments = slices.Clone(s.ParsedDocuments)
	out.Codebook = NewCodebook(s.Codebook.Rows())
	return out
}

// AnnotationsForVideo returns the annotations recorded against videoID.
func (s Session) AnnotationsForVideo(videoID string) []Annotation {
	var out []Annotation
	for i := range s.Annotations {
		if s.Annotations[i].VideoID == videoID {
			out = append(out, s.Annotations[i])
		}
	}
	return out
}

// LastMarkdownFilename names the file LastMarkdown is saved under:
// "<video>-<annotation count>.md".
func (s Session) LastMarkdownFilename() string {
	id := s.VideoID
	if id == "" {
		id = "annotation"
	}
	return fmt.Sprintf("%s-%d.md", id, len(s.Annotations))
}

// SessionFilename names the file a whole-video export is saved under.
func (s Session) SessionFilename() string {
	id := s.VideoID
	if id == "" {
		id = "annotation"
	}
	return id + "-session.md"
}

// EffectKind identifies a side effect requested by a transition.
type EffectKind string

// Effect kinds.
const (
	// EffectAnnounce asks the surrounding UI to show or speak a status message.
	EffectAnnounce EffectKind = "announce"
)

// Effect is a side-effect descriptor returned alongside a new Session.
// Transitions never perform effects themselves.
type Effect struct {
	Kind    EffectKind
	Message string
}

// Announce builds an announcement effect.
func Announce(message string) Effect {
	return Effect{Kind: EffectAnnounce, Message: message}
}
