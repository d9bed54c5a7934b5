package gallery

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const maxNameAttempts = 100

// LocalStorage keeps uploaded images in a single directory. Files are named
// by upload time in milliseconds plus the original extension
type LocalStorage struct {
	dir    string
	logger *log.Entry
	now    func() time.Time
}

func NewLocalStorage(dir string, logger *log.Entry) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload directory %s: %w", dir, err)
	}
	logger.WithField("dir", dir).Debug("Upload directory ensured")
	return &LocalStorage{dir: dir, logger: logger, now: time.Now}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save copies src into the upload directory and returns the stored file name
func (s *LocalStorage) Save(originalName string, src io.Reader) (string, error) {
	ext := filepath.Ext(filepath.Base(originalName))
	stamp := s.now().UnixMilli()

	var dst *os.File
	var name string
	for i := range maxNameAttempts {
		// two uploads in the same millisecond get the next free stamp
		name = strconv.FormatInt(stamp+int64(i), 10) + ext
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		} else if err != nil {
			return "", fmt.Errorf("could not create %s: %w", name, err)
		}
		dst = f
		break
	}
	if dst == nil {
		return "", fmt.Errorf("could not find a free name for upload %q", originalName)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("could not save %s: %w", name, err)
	}
	s.logger.WithFields(log.Fields{"original": originalName, "savedAs": name}).Info("Image saved")
	return name, nil
}

// List returns the names of the stored files, oldest first
func (s *LocalStorage) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
