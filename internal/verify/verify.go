// Package verify checks an existing pack zip against the platform's
// submission contract: entry names and exact pixel dimensions for every
// artifact. It reads back what the export pipeline (or any other tool)
// produced, so a pack can be validated before submission.
package verify

import (
	"archive/zip"
	"fmt"
	"path"
	"regexp"
	"strconv"

	"github.com/lehigh-university-libraries/stickerpress/internal/imageio"
	"github.com/lehigh-university-libraries/stickerpress/internal/pack"
)

var stickerName = regexp.MustCompile(`^(\d{2})\.png$`)

// Result is the verdict for one archive entry.
type Result struct {
	Entry  string
	OK     bool
	Detail string
}

// Report summarizes a pack check.
type Report struct {
	Type     pack.Type
	Stickers int
	Results  []Result
}

// Passed reports whether every entry satisfied the contract.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return len(r.Results) > 0
}

// CheckZip validates the archive at path against the given pack type. It
// checks that every entry is a recognized artifact name, that numbered
// stickers form a contiguous 01..NN sequence, that main.png and tab.png are
// present, and that every image has the exact required dimensions.
func CheckZip(zipPath string, packType pack.Type) (Report, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return Report{}, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	report := Report{Type: packType}
	stickerW, stickerH := packType.StickerSize()
	mainW, mainH := packType.MainSize()
	seen := map[int]bool{}
	hasMain, hasTab := false, false

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := path.Base(f.Name)
		switch {
		case base == "main.png":
			hasMain = true
			report.Results = append(report.Results, checkEntry(f, mainW, mainH))
		case base == "tab.png":
			hasTab = true
			report.Results = append(report.Results, checkEntry(f, pack.TabWidth, pack.TabHeight))
		case stickerName.MatchString(base):
			n, _ := strconv.Atoi(stickerName.FindStringSubmatch(base)[1])
			seen[n] = true
			report.Stickers++
			report.Results = append(report.Results, checkEntry(f, stickerW, stickerH))
		default:
			report.Results = append(report.Results, Result{
				Entry:  f.Name,
				Detail: "unrecognized entry name",
			})
		}
	}

	if !hasMain {
		report.Results = append(report.Results, Result{Entry: "main.png", Detail: "missing"})
	}
	if !hasTab {
		report.Results = append(report.Results, Result{Entry: "tab.png", Detail: "missing"})
	}
	for n := 1; n <= report.Stickers; n++ {
		if !seen[n] {
			report.Results = append(report.Results, Result{
				Entry:  fmt.Sprintf("%02d.png", n),
				Detail: "gap in sticker sequence",
			})
		}
	}
	return report, nil
}

func checkEntry(f *zip.File, wantW, wantH int) Result {
	rc, err := f.Open()
	if err != nil {
		return Result{Entry: f.Name, Detail: fmt.Sprintf("unreadable: %v", err)}
	}
	defer rc.Close()

	img, err := imageio.Decode(rc)
	if err != nil {
		return Result{Entry: f.Name, Detail: fmt.Sprintf("not a decodable image: %v", err)}
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w != wantW || h != wantH {
		return Result{
			Entry:  f.Name,
			Detail: fmt.Sprintf("%dx%d, want %dx%d", w, h, wantW, wantH),
		}
	}
	return Result{Entry: f.Name, OK: true}
}
