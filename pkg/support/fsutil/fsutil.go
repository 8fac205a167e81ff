// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil contains utilities for reading command-line inputs from the file system.
package fsutil

import (
	"io"
	"os"
	"os/user"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// FileExists returns whether the file or directory exists or an error if something went wrong in the filesystem.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to FileExists(%q)", path)
}

// ReplaceTilde by the user's home directory. Returns filePath if it doesn't start with "~".
//
// It returns an error if filePath has an unknown user (e.g: `~unknown/...`).
func ReplaceTilde(filePath string) (string, error) {
	if len(filePath) == 0 || filePath[0] != '~' {
		return filePath, nil
	}
	var userName string
	if filePath != "~" && !strings.HasPrefix(filePath, "~/") {
		sepIdx := strings.IndexRune(filePath, '/')
		if sepIdx == -1 {
			userName = filePath[1:]
		} else {
			userName = filePath[1:sepIdx]
		}
	}
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to lookup home directory for user in path %q", filePath)
	}
	return path.Join(usr.HomeDir, filePath[1+len(userName):]), nil
}

// ReadArg returns the contents given by a command-line argument:
//
//   - "-" reads stdin until EOF.
//   - "@<path>" reads the file at path, after replacing a leading "~".
//   - Anything else is the contents itself.
func ReadArg(arg string, stdin io.Reader) ([]byte, error) {
	switch {
	case arg == "-":
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "reading stdin")
	case strings.HasPrefix(arg, "@"):
		filePath, err := ReplaceTilde(arg[1:])
		if err != nil {
			return nil, err
		}
		exists, err := FileExists(filePath)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.Errorf("file %q doesn't exist", filePath)
		}
		data, err := os.ReadFile(filePath)
		return data, errors.Wrapf(err, "reading %q", filePath)
	}
	return []byte(arg), nil
}
