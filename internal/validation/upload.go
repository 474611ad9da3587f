package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxResumeBytes is the default upload ceiling for resume files.
const MaxResumeBytes int64 = 10 * 1024 * 1024

// resumeExtensions lists the accepted resume file types.
var resumeExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// ValidateResumeUpload checks a resume file's name and size before anything
// is written to disk or the database.
func ValidateResumeUpload(filename string, size int64, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = MaxResumeBytes
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := resumeExtensions[ext]; !ok {
		return fmt.Errorf("invalid file type %q: only .pdf, .doc, and .docx files are allowed", ext)
	}

	if size <= 0 {
		return fmt.Errorf("resume file is empty")
	}
	if size > maxBytes {
		return fmt.Errorf("resume file exceeds the %d MB limit", maxBytes/(1024*1024))
	}

	return nil
}
