package services

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
)

// memoryStorage is an in-memory Storage implementation for tests
type memoryStorage struct {
	files map[string]*bytes.Buffer
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string]*bytes.Buffer)}
}

func (s *memoryStorage) Create(id, kind string) (io.WriteCloser, error) {
	buf := &bytes.Buffer{}
	s.files[kind+"/"+id] = buf
	return nopWriteCloser{buf}, nil
}

func (s *memoryStorage) Reference(id, kind string) string {
	return "uploads/" + kind + "/" + id
}

func (s *memoryStorage) Remove(reference string) error {
	key := strings.TrimPrefix(reference, "uploads/")
	if _, ok := s.files[key]; !ok {
		return os.ErrNotExist
	}
	delete(s.files, key)
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func TestMediaAssembler_Assemble(t *testing.T) {
	st := newMemoryStorage()
	assembler := NewMediaAssembler(st)

	uploads := []Upload{
		{Filename: "one.mp3", Data: strings.NewReader("first audio")},
		{Filename: "two.mp3", Data: strings.NewReader("second audio")},
		{Filename: "three.mp3", Data: strings.NewReader("third audio")},
	}
	descriptions := []string{"intro", "dialogue"}

	items, err := assembler.Assemble("audio", uploads, descriptions)

	require.NoError(t, err)
	require.Len(t, items, 3)

	// Positional pairing, with an empty-description tail for surplus files
	assert.Equal(t, "intro", items[0].Description)
	assert.Equal(t, "dialogue", items[1].Description)
	assert.Equal(t, "", items[2].Description)

	// Every item carries a stored reference and the payloads were written
	assert.Len(t, st.files, 3)
	for _, item := range items {
		assert.True(t, strings.HasPrefix(item.File, "uploads/audio/"))
		assert.True(t, strings.HasSuffix(item.File, ".mp3"))
	}
}

func TestMediaAssembler_Assemble_SurplusDescriptionsDropped(t *testing.T) {
	assembler := NewMediaAssembler(newMemoryStorage())

	uploads := []Upload{
		{Filename: "one.png", Data: strings.NewReader("pic")},
	}
	descriptions := []string{"kept", "dropped", "dropped too"}

	items, err := assembler.Assemble("pictures", uploads, descriptions)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].Description)
}

func TestMediaAssembler_Assemble_NoUploads(t *testing.T) {
	st := newMemoryStorage()
	assembler := NewMediaAssembler(st)

	items, err := assembler.Assemble("video", nil, []string{"dangling"})

	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Empty(t, st.files)
}

func TestMediaAssembler_Discard(t *testing.T) {
	st := newMemoryStorage()
	assembler := NewMediaAssembler(st)

	audio, err := assembler.Assemble("audio", []Upload{
		{Filename: "a.mp3", Data: strings.NewReader("a")},
	}, nil)
	require.NoError(t, err)
	pictures, err := assembler.Assemble("pictures", []Upload{
		{Filename: "p.png", Data: strings.NewReader("p")},
	}, nil)
	require.NoError(t, err)
	require.Len(t, st.files, 2)

	err = assembler.Discard(models.LessonContent{Audio: audio, Pictures: pictures})

	require.NoError(t, err)
	assert.Empty(t, st.files)
}

func TestMediaAssembler_Discard_MissingFileIgnored(t *testing.T) {
	assembler := NewMediaAssembler(newMemoryStorage())

	err := assembler.Discard(models.LessonContent{
		Audio: []models.MediaItem{{File: "uploads/audio/gone.mp3"}},
	})

	assert.NoError(t, err)
}

func TestMediaAssembler_Assemble_PreservesOrder(t *testing.T) {
	st := newMemoryStorage()
	assembler := NewMediaAssembler(st)

	uploads := []Upload{
		{Filename: "a.mp4", Data: strings.NewReader("a")},
		{Filename: "b.mp4", Data: strings.NewReader("b")},
	}

	items, err := assembler.Assemble("video", uploads, []string{"first", "second"})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Description)
	assert.Equal(t, "second", items[1].Description)
	assert.NotEqual(t, items[0].File, items[1].File)
}
