package pipeline

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/viant/afs/file"
)

// entry is one archive member produced on the fly.
type entry struct {
	name    string
	content []byte
}

// archive writes every working directory file (lexicographic order) followed by
// extra entries into a deflate compressed ZIP uploaded to destURL.
func (w *workdir) archive(ctx context.Context, destURL string, modified time.Time, extra ...entry) error {
	names, err := w.files(ctx)
	if err != nil {
		return err
	}
	reader, writer := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := w.writeZip(ctx, writer, names, modified, extra)
		_ = writer.CloseWithError(err)
		done <- err
	}()
	uploadErr := w.fs.Upload(ctx, destURL, file.DefaultFileOsMode, reader)
	_ = reader.CloseWithError(uploadErr)
	if err = <-done; err != nil {
		return fmt.Errorf("failed to build archive %s: %w", destURL, err)
	}
	if uploadErr != nil {
		return fmt.Errorf("failed to write archive %s: %w", destURL, uploadErr)
	}
	return nil
}

func (w *workdir) writeZip(ctx context.Context, writer io.Writer, names []string, modified time.Time, extra []entry) error {
	zipWriter := zip.NewWriter(writer)
	for _, name := range names {
		data, err := w.read(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err = addEntry(zipWriter, entry{name: name, content: data}, modified); err != nil {
			return err
		}
	}
	for _, item := range extra {
		if err := addEntry(zipWriter, item, modified); err != nil {
			return err
		}
	}
	return zipWriter.Close()
}

func addEntry(zipWriter *zip.Writer, item entry, modified time.Time) error {
	header := &zip.FileHeader{Name: item.name, Method: zip.Deflate, Modified: modified}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", item.name, err)
	}
	if _, err = writer.Write(item.content); err != nil {
		return fmt.Errorf("failed to add %s: %w", item.name, err)
	}
	return nil
}
