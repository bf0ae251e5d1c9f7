package watty

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"watty-downloader/model"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const chapterIdPlaceholder = "{id}"

var imageIdReplacer = strings.NewReplacer("/", "_", ":", "_")

// DeriveImageId turns an image URL into a stable, file-name safe id: the host
// without its first label, followed by the path, with "/" and ":" replaced by
// "_". Query and fragment are ignored.
//
//	https://img.example.com/a/b.jpg -> example.com_a_b.jpg
func DeriveImageId(rawUrl string) (string, error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "", fmt.Errorf("%w: invalid image url %q: %v", model.ErrParse, rawUrl, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: image url %q has no host", model.ErrParse, rawUrl)
	}

	host := u.Host
	if _, rest, ok := strings.Cut(host, "."); ok {
		host = rest
	}
	return imageIdReplacer.Replace(host + u.Path), nil
}

// ChapterEndpoint keeps the text url up to its first "&" and appends the
// chapter id and page parameters.
func ChapterEndpoint(textUrl string) string {
	base, _, _ := strings.Cut(textUrl, "&")
	return base + "&id=" + chapterIdPlaceholder + "&page="
}

func ChapterUrl(endpoint, chapterId string) string {
	return strings.Replace(endpoint, chapterIdPlaceholder, chapterId, 1)
}

// parseFragment parses chapter text as body content and wraps the resulting
// nodes in a single container so the whole fragment can be reserialized.
func parseFragment(text string) (*goquery.Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(text), body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse chapter html: %v", model.ErrParse, err)
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(root), nil
}

func resolveUrl(base *url.URL, ref string) (string, error) {
	u, err := base.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: invalid image src %q: %v", model.ErrParse, ref, err)
	}
	return u.String(), nil
}

// rewriteImages downloads every image of a chapter once per book and points
// its src at the local copy. The image list is taken before any attribute
// changes.
func (a *Assembler) rewriteImages(ctx context.Context, book *model.Book, base *url.URL, doc *goquery.Document) error {
	imgs := doc.Find("img")
	for i := 0; i < imgs.Length(); i++ {
		img := imgs.Eq(i)
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}

		imgUrl, err := resolveUrl(base, src)
		if err != nil {
			return err
		}
		id, err := DeriveImageId(imgUrl)
		if err != nil {
			return err
		}

		asset := book.Image(id)
		if asset == nil {
			a.log.Infof("Getting image %v", imgUrl)
			data, err := a.fetcher.Fetch(ctx, imgUrl)
			if err != nil {
				return fmt.Errorf("failed to get image: %w", err)
			}
			asset = &model.ImageAsset{
				Id:        id,
				Data:      data,
				MediaType: model.MediaTypeJPEG,
				FileName:  imageFileName(book, id),
			}
			book.Images = append(book.Images, asset)
		}

		img.SetAttr("src", asset.FileName)
	}
	return nil
}

// imageFileName picks a storage path for id that no other asset of the book
// uses. Ids differing only by a ".jpg" suffix would otherwise share a file.
func imageFileName(book *model.Book, id string) string {
	candidates := []string{
		model.ImageFileName(id),
		path.Join(model.StaticDir, id+".jpg"),
	}
	for _, c := range candidates {
		if book.ImageByFile(c) == nil {
			return c
		}
	}
	for n := 2; ; n++ {
		c := path.Join(model.StaticDir, fmt.Sprintf("%s-%d.jpg", id, n))
		if book.ImageByFile(c) == nil {
			return c
		}
	}
}
