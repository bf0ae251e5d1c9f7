package watty

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"watty-downloader/model"
)

// fakeFetcher serves pages and blobs from memory and records every url
// requested. Unknown urls answer 404.
type fakeFetcher struct {
	pages map[string]string
	blobs map[string][]byte
	calls []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: map[string]string{},
		blobs: map[string][]byte{},
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	if b, ok := f.blobs[url]; ok {
		return b, nil
	}
	if p, ok := f.pages[url]; ok {
		return []byte(p), nil
	}
	return nil, &model.HTTPError{Url: url, StatusCode: http.StatusNotFound, Status: "404 Not Found"}
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	b, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (f *fakeFetcher) count(url string) int {
	n := 0
	for _, c := range f.calls {
		if c == url {
			n++
		}
	}
	return n
}

const (
	testStoryUrl   = "https://www.example.com/story/123-test"
	testCoverUrl   = "https://img.example.com/cover/123.jpg"
	testTextUrl    = "https://www.example.com/apiv2/?m=storytext&id=999&page=0"
	testChapterUrl = "https://www.example.com/apiv2/?m=storytext&id=111&page="
)

func testStoryData() map[string]any {
	return map[string]any{
		"id": 123,
		"text_url": map[string]any{
			"text": testTextUrl,
		},
		"group": map[string]any{
			"title":       "Test",
			"description": "A test story.",
			"modifyDate":  "2023-04-05T06:07:08Z",
			"rating":      4.2,
			"cover":       testCoverUrl,
			"user": map[string]any{
				"name":     "Jane Doe",
				"username": "jane",
			},
			"parts": []any{
				map[string]any{"id": 111, "title": "Ch1"},
			},
		},
	}
}

func prefetchedPage(payload string) string {
	return `<html><head>
<script>var unrelated = 1;</script>
<script>
  window.prefetched = ` + payload + `;
</script>
</head><body><h1>story</h1></body></html>`
}

func storyPage(t *testing.T, data map[string]any) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"story.123.metadata": map[string]any{"data": data},
	})
	if err != nil {
		t.Fatal(err)
	}
	return prefetchedPage(string(payload))
}
