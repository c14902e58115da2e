package codebook

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/components/status"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/messages"
	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

// mockCodebookService implements driving.CodebookService for testing.
type mockCodebookService struct {
	rows      []domain.CodebookRow
	err       error
	deleted   []string
	derived   int
	exportErr error
}

func announce(msg string) driving.Result {
	return driving.Result{Effects: []domain.Effect{domain.Announce(msg)}}
}

func (m *mockCodebookService) Ingest(context.Context, ...string) (driving.Result, error) {
	return driving.Result{}, m.err
}

func (m *mockCodebookService) Sync(context.Context, ...string) (driving.Result, error) {
	return driving.Result{}, m.err
}

func (m *mockCodebookService) IngestText(context.Context, string, string) (driving.Result, error) {
	return driving.Result{}, m.err
}

func (m *mockCodebookService) Derive(context.Context) (driving.Result, error) {
	if m.err != nil {
		return driving.Result{}, m.err
	}
	m.derived++
	return announce("2 variables generated from parsed files."), nil
}

func (m *mockCodebookService) Rows(context.Context) ([]domain.CodebookRow, error) {
	return m.rows, m.err
}

func (m *mockCodebookService) AddRow(context.Context) (domain.CodebookRow, driving.Result, error) {
	if m.err != nil {
		return domain.CodebookRow{}, driving.Result{}, m.err
	}
	row := domain.NewDeductiveRow("new-row")
	m.rows = append(m.rows, row)
	return row, announce("Variable added."), nil
}

func (m *mockCodebookService) UpdateRow(context.Context, string, domain.RowPatch) (driving.Result, error) {
	return driving.Result{}, m.err
}

func (m *mockCodebookService) DeleteRow(_ context.Context, id string) (driving.Result, error) {
	if m.err != nil {
		return driving.Result{}, m.err
	}
	m.deleted = append(m.deleted, id)
	return announce("Variable deleted."), nil
}

func (m *mockCodebookService) Reset(context.Context) (driving.Result, error) {
	return driving.Result{}, m.err
}

func (m *mockCodebookService) Export(_ context.Context, w io.Writer) (driving.Result, error) {
	if m.exportErr != nil {
		return driving.Result{}, m.exportErr
	}
	if _, err := w.Write([]byte("xlsx")); err != nil {
		return driving.Result{}, err
	}
	return announce("Codebook exported successfully."), nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.Settings
}

func (m *mockSettingsService) Get() domain.Settings       { return m.settings }
func (m *mockSettingsService) Set(string, string) error   { return nil }
func (m *mockSettingsService) Values() map[string]string { return nil }
func (m *mockSettingsService) Path() string               { return "" }

func sampleRows() []domain.CodebookRow {
	return []domain.CodebookRow{
		domain.NewInductiveRow("r1", "Trust Building"),
		domain.NewInductiveRow("r2", "Power Dynamics"),
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns the message it produces.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func loaded(t *testing.T, svc *mockCodebookService) *View {
	t.Helper()
	v := NewView(nil, svc, nil)
	v.SetDimensions(100, 30)
	msg := run(t, v.Init())
	v.Update(msg)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, &mockCodebookService{}, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Empty(t, v.Rows())
	assert.Nil(t, v.Selected())
}

func TestView_Init_LoadsRows(t *testing.T) {
	v := loaded(t, &mockCodebookService{rows: sampleRows()})

	assert.Len(t, v.Rows(), 2)
	assert.Equal(t, 2, v.Status().RowCount())
	assert.Contains(t, v.View(), "trust_building")
}

func TestView_Init_NilService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := run(t, v.Init())
	loadedMsg, ok := msg.(messages.RowsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loadedMsg.Err, errNoService)

	v.Update(msg)
	assert.Equal(t, status.StateError, v.Status().State())
}

func TestView_Edit_SelectsRow(t *testing.T) {
	v := loaded(t, &mockCodebookService{rows: sampleRows()})

	v.Update(keyRunes("j"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg, ok := run(t, cmd).(messages.RowSelected)
	require.True(t, ok)
	assert.Equal(t, "r2", msg.Row.ID)
}

func TestView_Edit_EmptyList(t *testing.T) {
	v := loaded(t, &mockCodebookService{})

	_, cmd := v.Update(keyRunes("e"))

	assert.Nil(t, cmd)
}

func TestView_Add(t *testing.T) {
	svc := &mockCodebookService{rows: sampleRows()}
	v := loaded(t, svc)

	_, cmd := v.Update(keyRunes("a"))
	added, ok := run(t, cmd).(messages.RowAdded)
	require.True(t, ok)
	require.NoError(t, added.Err)
	assert.Equal(t, "new-row", added.Row.ID)

	_, cmd = v.Update(added)
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateNotice, v.Status().State())
	assert.Contains(t, v.Status().Message(), "Variable added.")
}

func TestView_Delete_RequiresConfirmation(t *testing.T) {
	svc := &mockCodebookService{rows: sampleRows()}
	v := loaded(t, svc)

	_, cmd := v.Update(keyRunes("d"))
	assert.Nil(t, cmd)
	assert.True(t, v.PendingDelete())
	assert.Contains(t, v.View(), "Delete trust_building? [y/N]")

	_, cmd = v.Update(keyRunes("y"))
	deleted, ok := run(t, cmd).(messages.RowDeleted)
	require.True(t, ok)
	assert.Equal(t, "r1", deleted.ID)
	assert.Equal(t, []string{"r1"}, svc.deleted)
	assert.False(t, v.PendingDelete())

	_, cmd = v.Update(deleted)
	assert.NotNil(t, cmd, "reloads after delete")
	assert.Contains(t, v.Status().Message(), "Variable deleted.")
}

func TestView_Delete_Cancelled(t *testing.T) {
	svc := &mockCodebookService{rows: sampleRows()}
	v := loaded(t, svc)

	v.Update(keyRunes("d"))
	_, cmd := v.Update(keyRunes("n"))

	assert.Nil(t, cmd)
	assert.False(t, v.PendingDelete())
	assert.Empty(t, svc.deleted)
}

func TestView_Derive(t *testing.T) {
	svc := &mockCodebookService{rows: sampleRows()}
	v := loaded(t, svc)

	_, cmd := v.Update(keyRunes("g"))
	assert.Equal(t, status.StateWorking, v.Status().State())

	derived, ok := run(t, cmd).(messages.CodebookDerived)
	require.True(t, ok)
	assert.Equal(t, 1, svc.derived)

	v.Update(derived)
	assert.Contains(t, v.Status().Message(), "2 variables generated")
}

func TestView_Derive_NoDocuments(t *testing.T) {
	v := loaded(t, &mockCodebookService{})
	v.codebook.(*mockCodebookService).err = domain.ErrNoDocuments

	_, cmd := v.Update(keyRunes("g"))
	v.Update(run(t, cmd))

	assert.Equal(t, status.StateError, v.Status().State())
	assert.Contains(t, v.Status().Message(), domain.ErrNoDocuments.Error())
}

func TestView_Export(t *testing.T) {
	dir := t.TempDir()
	svc := &mockCodebookService{rows: sampleRows()}
	v := NewView(nil, svc, &mockSettingsService{settings: domain.Settings{ExportFilename: "study.xlsx"}})
	v.SetExportDir(dir)

	_, cmd := v.Update(keyRunes("x"))
	exported, ok := run(t, cmd).(messages.CodebookExported)
	require.True(t, ok)
	require.NoError(t, exported.Err)
	assert.Equal(t, filepath.Join(dir, "study.xlsx"), exported.Path)

	data, err := os.ReadFile(exported.Path)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))

	v.Update(exported)
	assert.Contains(t, v.Status().Message(), "Codebook exported successfully.")
	assert.Contains(t, v.Status().Message(), "Wrote ")
}

func TestView_Export_DefaultFilename(t *testing.T) {
	v := NewView(nil, &mockCodebookService{}, nil)
	v.SetExportDir("out")

	assert.Equal(t, filepath.Join("out", domain.DefaultExportFilename), v.ExportPath())
}

func TestView_Export_FailureRemovesFile(t *testing.T) {
	dir := t.TempDir()
	svc := &mockCodebookService{exportErr: domain.ErrEmptyCodebook}
	v := NewView(nil, svc, nil)
	v.SetExportDir(dir)

	_, cmd := v.Update(keyRunes("x"))
	exported := run(t, cmd).(messages.CodebookExported)
	require.ErrorIs(t, exported.Err, domain.ErrEmptyCodebook)

	_, err := os.Stat(v.ExportPath())
	assert.True(t, os.IsNotExist(err))

	v.Update(exported)
	assert.Equal(t, status.StateError, v.Status().State())
	assert.Contains(t, v.Status().Message(), "export failed")
}

func TestView_Back(t *testing.T) {
	v := loaded(t, &mockCodebookService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	msg, ok := run(t, cmd).(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}

func TestView_ErrorOccurred(t *testing.T) {
	v := loaded(t, &mockCodebookService{})

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Equal(t, status.StateError, v.Status().State())
}

func TestView_MutationError(t *testing.T) {
	v := loaded(t, &mockCodebookService{rows: sampleRows()})

	_, cmd := v.Update(messages.RowSaved{ID: "r1", Err: domain.ErrNotFound})

	assert.Nil(t, cmd)
	assert.Equal(t, status.StateError, v.Status().State())
}
