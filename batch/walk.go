package batch

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Job is one file to decode.
type Job struct {
	// Path is the input file.
	Path string
	// Explicit is set when the file was named directly instead of found by a walk.
	Explicit bool
}

// Walk returns a job for every regular file under root whose base name matches
// pattern, in lexical order.
func Walk(root, pattern string) ([]Job, error) {
	var jobs []Job

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			jobs = append(jobs, Job{Path: path})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// hasPrefetchExt reports whether name ends in ".pf", ignoring case.
func hasPrefetchExt(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pf")
}
