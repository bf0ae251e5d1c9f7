package utils

import (
	"archive/zip"
	"context"

	"github.com/a-h/templ"
)

func AddStringToZip(zipWriter *zip.Writer, relPath, content string, method uint16) error {
	return AddBytesToZip(zipWriter, relPath, []byte(content), method)
}

func AddBytesToZip(zipWriter *zip.Writer, relPath string, data []byte, method uint16) error {
	header := &zip.FileHeader{
		Name:   relPath,
		Method: method,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	return err
}

// AddComponentToZip renders c straight into a deflated zip entry.
func AddComponentToZip(zipWriter *zip.Writer, relPath string, c templ.Component) error {
	writer, err := zipWriter.CreateHeader(&zip.FileHeader{
		Name:   relPath,
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	return c.Render(context.Background(), writer)
}
