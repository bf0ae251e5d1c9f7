package model

import (
	"path"
	"strings"
)

const (
	MediaTypeJPEG  = "image/jpeg"
	MediaTypeXHTML = "application/xhtml+xml"

	StaticDir     = "static"
	CoverFileName = "static/cover.jpg"
	IntroFileName = "intro.xhtml"
)

type ImageAsset struct {
	Id        string
	Data      []byte
	MediaType string
	FileName  string
}

// ImageFileName is the book-local path an image with the given id is stored
// at. Ids that already end in ".jpg" are not suffixed twice.
func ImageFileName(id string) string {
	if !strings.HasSuffix(strings.ToLower(id), ".jpg") {
		id += ".jpg"
	}
	return path.Join(StaticDir, id)
}

type ChapterDocument struct {
	Title string
	// Number is 0 for the intro page and 1-based for story chapters.
	Number   int
	FileName string
	Content  string
}

// ItemId is the manifest id of the page.
func (c *ChapterDocument) ItemId() string {
	return strings.TrimSuffix(c.FileName, ".xhtml")
}

type Book struct {
	Identifier  string
	Uuid        string
	Title       string
	Author      string
	Description string
	Language    string
	Modified    string
	Source      string
	Cover       *ImageAsset
	Chapters    []*ChapterDocument
	Images      []*ImageAsset
}

// Toc returns the table of contents, which is the chapter order.
func (b *Book) Toc() []*ChapterDocument {
	return b.Chapters
}

// Spine returns the linear reading order, which is the chapter order.
func (b *Book) Spine() []*ChapterDocument {
	return b.Chapters
}

func (b *Book) Image(id string) *ImageAsset {
	for _, img := range b.Images {
		if img.Id == id {
			return img
		}
	}
	return nil
}

// ImageByFile returns the asset stored at fileName, the cover included.
func (b *Book) ImageByFile(fileName string) *ImageAsset {
	if b.Cover != nil && b.Cover.FileName == fileName {
		return b.Cover
	}
	for _, img := range b.Images {
		if img.FileName == fileName {
			return img
		}
	}
	return nil
}
