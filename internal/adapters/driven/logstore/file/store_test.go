package file

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
)

var fileNamePattern = regexp.MustCompile(`^search_docs_\d{8}_\d{6}_[0-9a-f]{6}\.json$`)

func record() *domain.LogRecord {
	return &domain.LogRecord{
		AgentName: "search_docs",
		Provider:  "openai",
		Model:     "gpt-4o-mini",
		Source:    domain.SourceUser,
		Messages: []domain.Message{
			{
				Kind:  domain.MessageKindRequest,
				Parts: []domain.Part{{PartKind: domain.PartKindUserPrompt, Content: "q"}},
			},
			{
				Kind:      domain.MessageKindResponse,
				Parts:     []domain.Part{{PartKind: domain.PartKindText, Content: "a"}},
				Timestamp: "2026-08-30T14:05:09Z",
			},
		},
	}
}

func TestWrite_FileNameFromLastMessage(t *testing.T) {
	store := NewStore(t.TempDir())

	name, err := store.Write(context.Background(), record())
	require.NoError(t, err)

	assert.Regexp(t, fileNamePattern, name)
	assert.Contains(t, name, "_20260830_140509_")

	_, err = os.Stat(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
}

func TestWrite_NoTimestampFallsBackToNow(t *testing.T) {
	store := NewStore(t.TempDir())

	rec := record()
	rec.Messages[1].Timestamp = ""
	name, err := store.Write(context.Background(), rec)
	require.NoError(t, err)
	assert.Regexp(t, fileNamePattern, name)
}

func TestWrite_UniqueNames(t *testing.T) {
	store := NewStore(t.TempDir())

	a, err := store.Write(context.Background(), record())
	require.NoError(t, err)
	b, err := store.Write(context.Background(), record())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestListAndLoad(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	name, err := store.Write(ctx, record())
	require.NoError(t, err)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)

	loaded, err := store.Load(ctx, name)
	require.NoError(t, err)

	assert.Equal(t, name, loaded.LogFile)
	assert.Equal(t, "search_docs", loaded.AgentName)
	assert.Equal(t, domain.SourceUser, loaded.Source)
	require.Len(t, loaded.Messages, 2)
	assert.Equal(t, "q", loaded.Messages[0].Parts[0].Content)
}

func TestLoad_NotFound(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Load(context.Background(), "missing.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_IgnoresNonJSON(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNewStore_EnvFallback(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	store := NewStore("")
	assert.Equal(t, dir, store.Dir())

	t.Setenv(EnvDir, "")
	store = NewStore("")
	assert.Equal(t, DefaultDir, store.Dir())
}

func TestNewEvalStore_EnvFallback(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvEvalDir, dir)

	store := NewEvalStore("")
	assert.Equal(t, dir, store.Dir())

	t.Setenv(EnvEvalDir, "")
	store = NewEvalStore("")
	assert.Equal(t, DefaultEvalDir, store.Dir())
}

func TestNewEvalStore_ExplicitDirWins(t *testing.T) {
	t.Setenv(EnvEvalDir, "ignored")
	assert.Equal(t, "curated", NewEvalStore("curated").Dir())
}
