package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulitkinaslunkak/studybuddy-lang/internal/models"
	"github.com/ulitkinaslunkak/studybuddy-lang/internal/storage"
)

// Storage defines methods for persisting uploaded media files
type Storage interface {
	// Create creates a new file for writing
	//
	// "id" is the generated file name.
	// "kind" is the media kind subdirectory (audio, video, pictures).
	//
	// Returns a WriteCloser and an error if any.
	Create(id, kind string) (io.WriteCloser, error)
	// Reference returns the opaque reference under which a stored file is
	// addressed inside lesson content
	//
	// "id" is the generated file name.
	// "kind" is the media kind subdirectory.
	//
	// Returns the reference string.
	Reference(id, kind string) string
	// Remove deletes the stored file behind a reference previously handed
	// out by Reference
	//
	// "reference" is the stored file reference.
	//
	// Returns an error if any.
	Remove(reference string) error
}

// Upload is a single uploaded media file pending storage
type Upload struct {
	Filename string
	Data     io.Reader
}

// MediaUploads groups the uploaded files and their descriptions per media
// kind, as they arrive in a multipart lesson creation request
type MediaUploads struct {
	Audio               []Upload
	Video               []Upload
	Pictures            []Upload
	AudioDescriptions   []string
	VideoDescriptions   []string
	PictureDescriptions []string
}

type mediaAssembler struct {
	storage Storage
}

// NewMediaAssembler creates a new media assembler
func NewMediaAssembler(st Storage) *mediaAssembler {
	return &mediaAssembler{
		storage: st,
	}
}

// Assemble stores the uploaded files of one media kind and pairs each stored
// reference with its description positionally: the i-th file gets the i-th
// description. Files beyond the description list get an empty description;
// surplus descriptions are dropped. Order of the uploads is preserved.
func (a *mediaAssembler) Assemble(kind string, uploads []Upload, descriptions []string) ([]models.MediaItem, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	items := make([]models.MediaItem, 0, len(uploads))
	for i, upload := range uploads {
		ref, err := a.store(kind, upload)
		if err != nil {
			return nil, err
		}

		description := ""
		if i < len(descriptions) {
			description = descriptions[i]
		}

		items = append(items, models.MediaItem{
			File:        ref,
			Description: description,
		})
	}

	return items, nil
}

// Discard removes the stored files behind all media items of a lesson.
// A reference whose file is already gone is not an error.
func (a *mediaAssembler) Discard(content models.LessonContent) error {
	for _, items := range [][]models.MediaItem{content.Audio, content.Video, content.Pictures} {
		for _, item := range items {
			if err := a.storage.Remove(item.File); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove media file %s: %w", item.File, err)
			}
		}
	}
	return nil
}

// store writes a single upload under a generated name and returns its reference
func (a *mediaAssembler) store(kind string, upload Upload) (string, error) {
	id := storage.GenerateFileName(filepath.Ext(upload.Filename))

	w, err := a.storage.Create(id, kind)
	if err != nil {
		return "", fmt.Errorf("failed to create %s file: %w", kind, err)
	}

	if _, err := io.Copy(w, upload.Data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write %s file: %w", kind, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s file: %w", kind, err)
	}

	return a.storage.Reference(id, kind), nil
}
