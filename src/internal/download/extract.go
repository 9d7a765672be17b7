package download

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip extracts a zip archive to a destination directory
func ExtractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = reader.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, file := range reader.File {
		if err := extractZipFile(file, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}

	return nil
}

func extractZipFile(file *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, file.Name)

	// Check for ZipSlip vulnerability
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path: %s", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	// Archives built on Windows carry no permission bits
	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	srcFile, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() { _ = destFile.Close() }()

	_, err = io.Copy(destFile, srcFile)
	return err
}

// ErrTargetExists is returned by MoveEntries when a destination entry is already present
var ErrTargetExists = errors.New("target already exists")

// MoveEntries renames every top-level entry of srcDir into destDir and
// returns the moved names. It refuses to replace anything already present
// in destDir; entries moved before such a conflict stay moved.
func MoveEntries(srcDir, destDir string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, err
	}

	moved := make([]string, 0, len(entries))
	for _, entry := range entries {
		target := filepath.Join(destDir, entry.Name())
		if _, err := os.Lstat(target); err == nil {
			return moved, fmt.Errorf("%w: %s", ErrTargetExists, target)
		}
		if err := os.Rename(filepath.Join(srcDir, entry.Name()), target); err != nil {
			return moved, err
		}
		moved = append(moved, entry.Name())
	}

	return moved, nil
}

// MakeExecutable adds the owner execute bit to root and everything below it,
// like `chmod -R u+x`.
func MakeExecutable(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return os.Chmod(path, info.Mode().Perm()|0100)
	})
}
