package utils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// ArchiveFile is one entry of an in-memory zip archive
type ArchiveFile struct {
	Name     string
	Content  []byte
	Modified time.Time
}

// CreateZip writes files, in order, into a new zip archive
func CreateZip(files []ArchiveFile) (*bytes.Buffer, error) {
	zipBuffer := new(bytes.Buffer)
	zipWriter := zip.NewWriter(zipBuffer)

	for _, f := range files {
		header := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		}
		fileWriter, err := zipWriter.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", f.Name, err)
		}
		if _, err := fileWriter.Write(f.Content); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return zipBuffer, nil
}
