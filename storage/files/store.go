package files

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core"
)

// urlPrefix is where the API serves stored files from.
const urlPrefix = "/uploads"

// DiskStore keeps uploaded files on the local filesystem under root,
// one subdirectory per entity kind.
type DiskStore struct {
	root string
}

var _ core.FileStore = (*DiskStore)(nil) // interface compliance check

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload dir")
	}
	return &DiskStore{root: root}, nil
}

// Save writes the upload to disk under root/subdir with a collision-proof
// name and returns the URL path to record on the entity.
func (store *DiskStore) Save(fh *multipart.FileHeader, subdir, prefix string) (string, error) {
	dir := filepath.Join(store.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating upload subdir")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := prefix + "-" + time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString() + ext

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening upload")
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer func() { _ = dst.Close() }()

	if _, err = io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "writing file")
	}
	return urlPrefix + "/" + subdir + "/" + name, nil
}

// Remove deletes the file behind a URL path previously returned by Save.
// A path that no longer exists is not an error.
func (store *DiskStore) Remove(path string) error {
	rel := strings.TrimPrefix(path, urlPrefix+"/")
	if rel == path || rel == "" {
		return errors.Errorf("not an upload path: %s", path)
	}
	// the path is stored data, not user input, but keep it inside root anyway
	full := filepath.Join(store.root, filepath.Clean("/"+rel))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing file")
	}
	return nil
}
