package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FileKeyGenerator produces date-partitioned object keys,
// e.g. scans/2026/08/30/1a2b3c4d_chest.png.
type FileKeyGenerator struct {
	prefix     string
	maxNameLen int
}

func NewFileKeyGenerator(prefix string) *FileKeyGenerator {
	return &FileKeyGenerator{
		prefix:     prefix,
		maxNameLen: 50,
	}
}

func (fkg *FileKeyGenerator) GenerateFileKey(filename string) string {
	now := time.Now()
	uid := uuid.New().String()[:8]
	return fmt.Sprintf("%s/%s/%s_%s",
		fkg.prefix, now.Format("2006/01/02"), uid, fkg.cleanFilename(filename))
}

func (fkg *FileKeyGenerator) cleanFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	clean := unsafeKeyChars.ReplaceAllString(base, "_")
	clean = strings.Trim(clean, "_")
	if clean == "" {
		clean = "image"
	}
	if len(clean) > fkg.maxNameLen {
		clean = clean[:fkg.maxNameLen]
	}
	return clean + ext
}
