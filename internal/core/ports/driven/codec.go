package driven

import "github.com/simlab-siue/methodosync/internal/core/domain"

// AnnotationEncoder renders annotations into the vault Markdown dialect.
type AnnotationEncoder interface {
	// EncodeAnnotation renders a single annotation.
	EncodeAnnotation(a domain.Annotation) string

	// EncodeSession renders every annotation of one video as a single
	// document. Returns the empty string for no annotations.
	EncodeSession(videoID string, annotations []domain.Annotation) string
}

// DocumentDecoder parses vault Markdown back into category records.
// Decode never fails: problems are reported on the returned document.
type DocumentDecoder interface {
	Decode(filename string, content []byte) domain.ParsedDocument
}
