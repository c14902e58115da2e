// Package session provides a read-only view of the phase 1 annotations.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/messages"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/styles"
	"github.com/simlab-siue/methodosync/internal/codecs/frontmatter"
	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

var errNoService = errors.New("annotation service not available")

// View shows the loaded video, its annotations and the axial registry.
type View struct {
	styles     *styles.Styles
	annotation driving.AnnotationService

	ctx     context.Context
	session domain.Session
	err     error
	offset  int

	width  int
	height int
}

// NewView creates a new session view. annotation may be nil.
func NewView(s *styles.Styles, annotation driving.AnnotationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		annotation: annotation,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the session.
func (v *View) Init() tea.Cmd {
	v.offset = 0
	return func() tea.Msg {
		if v.annotation == nil {
			return messages.SessionLoaded{Err: errNoService}
		}
		sess, err := v.annotation.Session(v.ctx)
		return messages.SessionLoaded{Session: sess, Err: err}
	}
}

// Update handles messages for the session view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.SessionLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.session = msg.Session
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.offset > 0 {
				v.offset--
			}
		case "down", "j":
			if v.offset < len(v.annotations())-1 {
				v.offset++
			}
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case "q":
			return v, tea.Quit
		}
	}
	return v, nil
}

func (v *View) annotations() []domain.Annotation {
	if v.session.VideoID == "" {
		return nil
	}
	return v.session.AnnotationsForVideo(v.session.VideoID)
}

// View renders the session.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Annotations"))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
	case v.session.VideoID == "":
		b.WriteString(v.styles.Muted.Render("No video loaded. Use `methodosync video set` first."))
	default:
		v.renderSession(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Scroll  [esc] Back"))
	return b.String()
}

func (v *View) renderSession(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render("Video " + v.session.VideoID))
	b.WriteString("\n\n")

	list := v.annotations()
	if len(list) == 0 {
		b.WriteString(v.styles.Muted.Render("No annotations yet."))
	}

	// Each annotation takes up to three lines.
	visible := max((v.height-10)/3, 1)
	end := min(v.offset+visible, len(list))
	for i := v.offset; i < end; i++ {
		a := &list[i]
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%d. [%s] %s",
			i+1, frontmatter.FormatTimestamp(a.Timestamp), a.ObservationText)))
		b.WriteString("\n")
		if len(a.OpenCodes) > 0 {
			b.WriteString(v.styles.Muted.Render("   codes: " + strings.Join(a.OpenCodes, ", ")))
			b.WriteString("\n")
		}
		if a.AxialCategory != "" {
			b.WriteString(v.styles.Inductive.Render("   axial: " + a.AxialCategory))
			b.WriteString("\n")
		}
	}

	if len(v.session.AxialCategories) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Axial categories"))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(strings.Join(v.session.AxialCategories, ", ")))
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Session returns the loaded session.
func (v *View) Session() domain.Session {
	return v.session
}
