package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// ErrNotPDF is returned by SaveReport when the backend answered with
// something other than a PDF document.
var ErrNotPDF = errors.New("report is not a PDF document")

// sniffLen is the header size filetype needs to match any known kind.
const sniffLen = 262

// DownloadReport streams the backend's PDF report into w and returns the
// number of bytes written.
func (c *Client) DownloadReport(ctx context.Context, w io.Writer) (int64, error) {
	resp, err := c.get(ctx, c.ReportURL())
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download report: %w", err)
	}
	return n, nil
}

// SaveReport downloads the report to dir/raport.pdf. The file is written to
// a temporary name first so a failed download never leaves a partial PDF.
func (c *Client) SaveReport(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".raport-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := c.DownloadReport(ctx, tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := checkPDF(tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	dest := filepath.Join(dir, ReportFileName)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", err
	}
	return dest, nil
}

func checkPDF(f *os.File) error {
	head := make([]byte, sniffLen)
	n, err := f.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if filetype.Is(head[:n], "pdf") {
		return nil
	}
	if kind, _ := filetype.Match(head[:n]); kind != filetype.Unknown {
		return fmt.Errorf("%w: got %s", ErrNotPDF, kind.MIME.Value)
	}
	return ErrNotPDF
}
