package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"watty-downloader/model"
	"watty-downloader/template"
	"watty-downloader/utils"
)

const (
	contentDir = "OEBPS"

	uniqueIdentifier = "book-id"
	coverItemId      = "cover-image"
	modifiedLayout   = "2006-01-02T15:04:05Z"
)

// WriteBook serializes book and writes it to outputPath in one go, so a
// failed build never leaves a partial file behind.
func WriteBook(book *model.Book, outputPath string) error {
	data, err := MarshalBook(book)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write epub: %w", err)
	}
	return nil
}

// MarshalBook packs book into an EPUB 3 container with an EPUB 2 NCX for
// older readers.
func MarshalBook(book *model.Book) ([]byte, error) {
	if book.Cover == nil {
		return nil, fmt.Errorf("book %q has no cover", book.Title)
	}
	if err := checkFileNames(book); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	zipWriter := zip.NewWriter(buf)

	// mimetype must be the first entry and stored uncompressed
	err := utils.AddStringToZip(zipWriter, "mimetype", "application/epub+zip", zip.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to write mimetype: %w", err)
	}

	err = utils.AddComponentToZip(zipWriter, "META-INF/container.xml", template.ContainerXML())
	if err != nil {
		return nil, fmt.Errorf("failed to render container: %w", err)
	}

	dc, manifest, spine := createContentOPF(book)
	err = utils.AddComponentToZip(zipWriter, contentPath("content.opf"), template.ContentOPF(uniqueIdentifier, dc, manifest, spine))
	if err != nil {
		return nil, fmt.Errorf("failed to render content: %w", err)
	}

	err = utils.AddComponentToZip(zipWriter, contentPath("toc.ncx"),
		template.TocNCX(book.Title, model.NewTocNCXHead(book.Identifier), model.NewNavMap(book.Toc())))
	if err != nil {
		return nil, fmt.Errorf("failed to render toc: %w", err)
	}

	err = utils.AddComponentToZip(zipWriter, contentPath("nav.xhtml"), template.NavXHTML(book.Title, book.Toc()))
	if err != nil {
		return nil, fmt.Errorf("failed to render nav: %w", err)
	}

	err = utils.AddStringToZip(zipWriter, contentPath("style/style.css"), template.StyleCSS, zip.Deflate)
	if err != nil {
		return nil, fmt.Errorf("failed to write CSS: %w", err)
	}

	for _, chapter := range book.Chapters {
		err = utils.AddStringToZip(zipWriter, contentPath(chapter.FileName), chapter.Content, zip.Deflate)
		if err != nil {
			return nil, fmt.Errorf("failed to write chapter %q: %w", chapter.Title, err)
		}
	}

	err = utils.AddBytesToZip(zipWriter, contentPath(book.Cover.FileName), book.Cover.Data, zip.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to write cover: %w", err)
	}
	for _, img := range book.Images {
		err = utils.AddBytesToZip(zipWriter, contentPath(img.FileName), img.Data, zip.Store)
		if err != nil {
			return nil, fmt.Errorf("failed to write image %v: %w", img.Id, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to pack epub: %w", err)
	}
	return buf.Bytes(), nil
}

// checkFileNames rejects books where two entries share a path, which would
// produce duplicate zip entries and manifest hrefs.
func checkFileNames(book *model.Book) error {
	seen := map[string]bool{book.Cover.FileName: true}
	for _, chapter := range book.Chapters {
		if seen[chapter.FileName] {
			return fmt.Errorf("book %q stores two entries at %v", book.Title, chapter.FileName)
		}
		seen[chapter.FileName] = true
	}
	for _, img := range book.Images {
		if seen[img.FileName] {
			return fmt.Errorf("book %q stores two entries at %v", book.Title, img.FileName)
		}
		seen[img.FileName] = true
	}
	return nil
}

func contentPath(name string) string {
	return path.Join(contentDir, name)
}

func createContentOPF(book *model.Book) (*model.DublinCoreMetadata, *model.Manifest, *model.Spine) {
	dc := model.NewDublinCoreMetadata()
	dc.Titles = []model.DCTitle{{Value: book.Title}}
	dc.Identifiers = []model.DCIdentifier{{Value: book.Identifier, ID: uniqueIdentifier}}
	if book.Uuid != "" {
		dc.Identifiers = append(dc.Identifiers, model.DCIdentifier{
			Value: fmt.Sprintf("urn:uuid:%s", book.Uuid),
			ID:    "uuid-id",
		})
	}
	dc.Languages = []model.DCLanguage{{Value: book.Language}}
	if book.Author != "" {
		dc.Creators = []model.DCCreator{{Value: book.Author, ID: "creator"}}
	}
	if book.Description != "" {
		dc.Descriptions = []model.DCDescription{{Value: book.Description}}
	}
	if book.Source != "" {
		dc.Sources = []model.DCSource{{Value: book.Source}}
	}
	dc.Metas = []model.DublinCoreMeta{
		{
			Name:    "cover",
			Content: coverItemId,
		},
		{
			Property: "dcterms:modified",
			Value:    modified(book.Modified),
		},
	}

	manifest := &model.Manifest{
		Items: []model.ManifestItem{
			{ID: "ncx", Link: "toc.ncx", Media: "application/x-dtbncx+xml"},
			{ID: "nav", Link: "nav.xhtml", Media: model.MediaTypeXHTML, Properties: "nav"},
			{ID: "style", Link: "style/style.css", Media: "text/css"},
			{ID: coverItemId, Link: book.Cover.FileName, Media: book.Cover.MediaType, Properties: "cover-image"},
		},
	}
	spine := &model.Spine{
		Toc:   "ncx",
		Items: make([]model.SpineItem, 0, len(book.Chapters)),
	}
	for _, chapter := range book.Spine() {
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    chapter.ItemId(),
			Link:  chapter.FileName,
			Media: model.MediaTypeXHTML,
		})
		spine.Items = append(spine.Items, model.SpineItem{IDref: chapter.ItemId()})
	}
	for i, img := range book.Images {
		manifest.Items = append(manifest.Items, model.ManifestItem{
			ID:    fmt.Sprintf("image-%03d", i+1),
			Link:  img.FileName,
			Media: img.MediaType,
		})
	}

	return dc, manifest, spine
}

// modified normalizes the story's last modification date for
// dcterms:modified, falling back to the current time.
func modified(lastModified string) string {
	t, err := time.Parse(time.RFC3339, lastModified)
	if err != nil {
		t = time.Now()
	}
	return t.UTC().Format(modifiedLayout)
}
