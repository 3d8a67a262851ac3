package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

const maxPhotoBytes = 2 << 20 // 2MB

// Typed upload failures. Handlers surface them as field errors on "photo".
var (
	ErrPhotoTooLarge = errors.New("The photo must not be larger than 2MB")
	ErrPhotoBadType  = errors.New("The photo must be a png, jpg or jpeg image")
)

// SavePhoto validates and stores an uploaded photo under dir/user-photo,
// returning the generated filename. The name is prefixed with a millisecond
// timestamp so repeated uploads of the same file never collide.
func SavePhoto(fh *multipart.FileHeader, dir string) (string, error) {
	if fh.Size > maxPhotoBytes {
		return "", ErrPhotoTooLarge
	}
	switch fh.Header.Get("Content-Type") {
	case "image/png", "image/jpg", "image/jpeg":
	default:
		return "", ErrPhotoBadType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fh.Filename))
	path := filepath.Join(dir, "user-photo", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// RemovePhoto deletes a stored photo. Cleanup is best-effort: a missing
// file is not an error.
func RemovePhoto(dir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, "user-photo", name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
