package utils

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
)

func TestZipHelpers(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	if err := AddStringToZip(zw, "mimetype", "application/epub+zip", zip.Store); err != nil {
		t.Fatal(err)
	}
	if err := AddBytesToZip(zw, "a/b.bin", []byte{1, 2, 3}, zip.Deflate); err != nil {
		t.Fatal(err)
	}
	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>rendered</p>")
		return err
	})
	if err := AddComponentToZip(zw, "page.xhtml", component); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"mimetype":   "application/epub+zip",
		"a/b.bin":    "\x01\x02\x03",
		"page.xhtml": "<p>rendered</p>",
	}
	if len(r.File) != len(want) {
		t.Fatalf("got %d entries, want %d", len(r.File), len(want))
	}
	if r.File[0].Method != zip.Store {
		t.Errorf("mimetype method = %d", r.File[0].Method)
	}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		if string(data) != want[f.Name] {
			t.Errorf("%v = %q, want %q", f.Name, data, want[f.Name])
		}
	}
}
