package iorecon

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// looksLikePetraProject reports whether dir has the marker layout of a
// Petra project: a DB directory with WELL.DAT and a PARMS directory.
func looksLikePetraProject(dir string) bool {
	dbInfo, err := os.Stat(filepath.Join(dir, "DB"))
	if err != nil || !dbInfo.IsDir() {
		return false
	}
	parmsInfo, err := os.Stat(filepath.Join(dir, "PARMS"))
	if err != nil || !parmsInfo.IsDir() {
		return false
	}
	wellInfo, err := os.Stat(filepath.Join(dir, "DB", "WELL.DAT"))
	return err == nil && wellInfo.Mode().IsRegular()
}

// scanForRepos walks root for directories that look like Petra
// projects. Matched project directories are not descended into; their
// contents never contain nested projects.
func scanForRepos(root string) ([]string, error) {
	var repos []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// unreadable subtree on a network share, keep walking
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if looksLikePetraProject(path) {
			repos = append(repos, path)
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, &ScanError{Root: root, Err: err}
	}
	return repos, nil
}

// dirStats walks a project directory counting files, directories and
// bytes, and tracking the newest file modification time.
func dirStats(dir string) (files, dirs, bytes int64, lastMod time.Time) {
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir {
				dirs++
			}
			return nil
		}
		files++
		if info, err := d.Info(); err == nil {
			bytes += info.Size()
			if info.ModTime().After(lastMod) {
				lastMod = info.ModTime()
			}
		}
		return nil
	})
	return files, dirs, bytes, lastMod
}
