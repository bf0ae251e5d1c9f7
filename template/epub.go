package template

import (
	"context"
	"io"

	"watty-downloader/model"

	"github.com/a-h/templ"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

const containerXML = xmlHeader + `<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

func ContainerXML() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, containerXML)
		return err
	})
}

func ContentOPF(uniqueIdentifier string, dc *model.DublinCoreMetadata, manifest *model.Manifest, spine *model.Spine) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		metadata, err := dc.Marshal()
		if err != nil {
			return err
		}
		items, err := manifest.Marshal()
		if err != nil {
			return err
		}
		itemRefs, err := spine.Marshal()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, xmlHeader+
			`<package version="3.0" xmlns="`+model.NamespaceOPF+`" unique-identifier="`+templ.EscapeString(uniqueIdentifier)+`">`+
			metadata+items+itemRefs+
			`</package>`)
		return err
	})
}

func TocNCX(title string, head *model.TocNCXHead, navMap *model.NavMap) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		headXML, err := head.Marshal()
		if err != nil {
			return err
		}
		navMapXML, err := navMap.Marshal()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, xmlHeader+
			`<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">`+
			headXML+
			`<docTitle><text>`+templ.EscapeString(title)+`</text></docTitle>`+
			navMapXML+
			`</ncx>`)
		return err
	})
}

// NavXHTML is the EPUB 3 navigation document listing every page in order.
func NavXHTML(title string, chapters []*model.ChapterDocument) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, xmlHeader+
			`<!DOCTYPE html>`+"\n"+
			`<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">`+
			`<head><title>`+templ.EscapeString(title)+`</title>`+
			`<link rel="stylesheet" type="text/css" href="style/style.css"/></head>`+
			`<body><nav epub:type="toc" id="toc"><h2>`+templ.EscapeString(title)+`</h2><ol>`); err != nil {
			return err
		}
		for _, chapter := range chapters {
			if _, err := io.WriteString(w, `<li><a href="`+templ.EscapeString(chapter.FileName)+`">`+
				templ.EscapeString(chapter.Title)+`</a></li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ol></nav></body></html>`)
		return err
	})
}
