// Package archive assembles export artifacts into the downloadable pack
// zip. The container layout is part of the compatibility contract: every
// entry lives under a single pack folder and keeps its exact artifact name.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/lehigh-university-libraries/stickerpress/internal/collection"
)

// Filename returns the suggested download name for a pack of the given
// sticker count.
func Filename(exportCount int) string {
	return fmt.Sprintf("LINE_Stickers_%d.zip", exportCount)
}

// folderFor derives the in-archive folder from the download filename.
func folderFor(exportCount int) string {
	return fmt.Sprintf("LINE_Stickers_%d", exportCount)
}

// BuildZip writes all artifacts into a zip blob. The sticker count is the
// artifact count minus the main and tab images. Any write failure aborts
// the whole archive; no partial blob is returned.
func BuildZip(artifacts []collection.Artifact) ([]byte, error) {
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts to archive")
	}
	folder := folderFor(len(artifacts) - 2)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, a := range artifacts {
		f, err := w.Create(folder + "/" + a.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", a.Name, err)
		}
		if _, err := f.Write(a.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", a.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
