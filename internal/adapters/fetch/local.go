package fetch

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/core/ports"
)

// localFetcher reads spec documents from the file system.
type localFetcher struct{}

// fetch reads the file at source and captures its modification time as the
// local change validator.
func (l *localFetcher) fetch(source string) (*ports.Payload, error) {
	path, err := resolveLocalPath(source)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, classifyFileError(err, source)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classifyFileError(err, source)
	}

	return &ports.Payload{
		Content: content,
		Local: domain.LocalValidators{
			MTime: info.ModTime().UTC().Format(time.RFC3339),
		},
	}, nil
}

// revalidate compares the file's current modification time against the
// persisted validator. A file that cannot be stat'ed is treated as changed so
// the cold path surfaces the real error.
func (l *localFetcher) revalidate(source string, record *domain.CacheRecord) (bool, string) {
	if record.LocalCache.MTime == "" {
		return true, "no local validator recorded"
	}
	path, err := resolveLocalPath(source)
	if err != nil {
		return false, "source path no longer resolvable"
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, "source file not statable"
	}
	if info.ModTime().UTC().Format(time.RFC3339) != record.LocalCache.MTime {
		return false, "modification time changed"
	}
	return true, "modification time unchanged"
}

// resolveLocalPath canonicalizes a local source path, rejecting parent
// directory segments both before and after symlink resolution. The pre-check
// runs before any file-system access.
func resolveLocalPath(source string) (string, error) {
	if containsParentSegment(source) {
		return "", domain.WithDetail(domain.ErrPathTraversal, "path", source)
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return "", domain.WithDetail(domain.ErrReadFailed, "path", source)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", classifyFileError(err, source)
	}
	if containsParentSegment(resolved) {
		return "", domain.WithDetail(domain.ErrPathTraversal, "path", source)
	}
	return resolved, nil
}

func containsParentSegment(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}

func classifyFileError(err error, source string) error {
	switch {
	case os.IsNotExist(err):
		return domain.WithDetail(domain.ErrFileNotFound, "path", source)
	case os.IsPermission(err):
		return domain.WithDetail(domain.ErrPermissionDenied, "path", source)
	default:
		return domain.WithDetail(domain.ErrReadFailed, "path", source)
	}
}
