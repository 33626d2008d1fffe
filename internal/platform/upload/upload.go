// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upload stores scanned images (grave-stone photographs) in the image directory.

Files are accepted only when their leading bytes identify them as JPEG, PNG or GIF,
whatever name or Content-Type the browser sent. Stored files are named

	<base>-<N>.<ext>

where base is built by [Basename] from the record key and N is the first sequence
number not used by any image of the same base.
*/
package upload

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
)

// sniffLen is the number of bytes [http.DetectContentType] considers.
const sniffLen = 512

// maxSequence bounds the search for a free file name.
const maxSequence = 999

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Store writes images into a single directory.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore returns a Store rooted at dir accepting files up to maxBytes.
func NewStore(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Dir returns the image directory.
func (s *Store) Dir() string {
	return s.dir
}

// Basename joins the key parts with '-' after dropping characters that are
// unsafe in a file name.
func Basename(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
				return r
			case r == ' ':
				return '_'
			default:
				return -1
			}
		}, strings.TrimSpace(part))
		cleaned = append(cleaned, part)
	}
	return strings.Join(cleaned, "-")
}

// Save checks the image signature of file and stores it under the first free
// name for base. It returns the stored file name (without directory).
func (s *Store) Save(ctx context.Context, base string, file io.Reader) (string, error) {
	reader := bufio.NewReaderSize(file, sniffLen)
	head, err := reader.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", apperr.Internal(fmt.Errorf("upload: reading signature: %w", err))
	}
	if len(head) == 0 {
		return "", apperr.ValidationError("Uploaded file is empty")
	}

	contentType := http.DetectContentType(head)
	extension, ok := extensions[contentType]
	if !ok {
		return "", apperr.ValidationError(fmt.Sprintf("Uploaded file is not a JPEG, PNG or GIF image (%s)", contentType))
	}

	output, name, err := s.create(base, extension)
	if err != nil {
		return "", err
	}

	written, copyErr := io.Copy(output, io.LimitReader(reader, s.maxBytes+1))
	closeErr := output.Close()

	switch {
	case copyErr != nil:
		s.discard(name)
		return "", apperr.Internal(fmt.Errorf("upload: writing %s: %w", name, copyErr))
	case closeErr != nil:
		s.discard(name)
		return "", apperr.Internal(fmt.Errorf("upload: closing %s: %w", name, closeErr))
	case written > s.maxBytes:
		s.discard(name)
		return "", apperr.TooLarge(fmt.Sprintf("Image exceeds %d bytes", s.maxBytes))
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "image_stored",
		slog.String("name", name),
		slog.String("content_type", contentType),
		slog.Int64("bytes", written),
	)
	return name, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return apperr.ValidationError("Invalid image name")
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperr.Internal(fmt.Errorf("upload: removing %s: %w", name, err))
	}
	return nil
}

// create opens the first free <base>-<N><extension> exclusively.
func (s *Store) create(base, extension string) (*os.File, string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, "", apperr.Internal(fmt.Errorf("upload: image directory: %w", err))
	}

	for sequence := 1; sequence <= maxSequence; sequence++ {
		stem := fmt.Sprintf("%s-%d", base, sequence)
		if s.taken(stem) {
			continue
		}

		name := stem + extension
		file, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", apperr.Internal(fmt.Errorf("upload: creating %s: %w", name, err))
		}
		return file, name, nil
	}
	return nil, "", apperr.Conflict(fmt.Sprintf("No free image name for %s", base))
}

// taken reports whether an image with the given stem exists in any format.
func (s *Store) taken(stem string) bool {
	for _, extension := range extensions {
		if _, err := os.Stat(filepath.Join(s.dir, stem+extension)); err == nil {
			return true
		}
	}
	return false
}

func (s *Store) discard(name string) {
	_ = os.Remove(filepath.Join(s.dir, name))
}
