// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	apconstants "github.com/srl-labs/apsetup/constants"
	aperrors "github.com/srl-labs/apsetup/errors"
)

func FileExists(filename string) bool {
	f, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !f.IsDir()
}

// CreateDirectory creates a directory by a path with a mode/permission specified by perm.
// If directory exists, the function does not do anything.
func CreateDirectory(path string, perm os.FileMode) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, perm)
	}
	return nil
}

// WriteFile writes content to path, creating missing parent directories.
// The content is written to a temporary file in the same directory first
// and renamed over the target so a reader never sees a partial file.
func WriteFile(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := CreateDirectory(dir, apconstants.PermissionsDirDefault); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// ReadFileContent returns the content of file. A missing file is reported
// with errors.ErrFileNotFound.
func ReadFileContent(file string) ([]byte, error) {
	if !FileExists(file) {
		return nil, fmt.Errorf("%w: %s", aperrors.ErrFileNotFound, file)
	}

	return os.ReadFile(file)
}

// SetLine makes sure path contains line. The first line matching re is replaced by line,
// further matches are dropped. If nothing matches, line is appended.
// A missing file is created with perm.
func SetLine(path string, re *regexp.Regexp, line string, perm os.FileMode) error {
	content, err := ReadFileContent(path)
	switch {
	case errors.Is(err, aperrors.ErrFileNotFound):
		// created by WriteFile
	case err != nil:
		return err
	default:
		if fi, err := os.Stat(path); err == nil {
			perm = fi.Mode().Perm()
		}
	}

	return WriteFile(path, setLine(content, re, line), perm)
}

func setLine(content []byte, re *regexp.Regexp, line string) []byte {
	var (
		out      bytes.Buffer
		replaced bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		l := scanner.Text()
		if re.MatchString(l) {
			if !replaced {
				out.WriteString(line + "\n")
				replaced = true
			}
			continue
		}
		out.WriteString(l + "\n")
	}

	if !replaced {
		out.WriteString(line + "\n")
	}

	return out.Bytes()
}
