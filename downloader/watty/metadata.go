package watty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"watty-downloader/model"
	"watty-downloader/utils"

	"github.com/PuerkitoBio/goquery"
)

const prefetchedPrefix = "window.prefetched"

// MetadataFetcher reads story metadata out of the prefetched page data the
// platform embeds in every story page.
type MetadataFetcher struct {
	fetcher model.Fetcher
	log     *utils.Logger
}

// NewMetadataFetcher returns a MetadataFetcher using fetcher for every request.
func NewMetadataFetcher(fetcher model.Fetcher, log *utils.Logger) *MetadataFetcher {
	return &MetadataFetcher{fetcher: fetcher, log: log}
}

// FetchMetadata downloads the story page at storyUrl and decodes its
// prefetched metadata.
func (m *MetadataFetcher) FetchMetadata(ctx context.Context, storyUrl string) (*model.Story, error) {
	m.log.Infof("Getting story %v", storyUrl)

	page, err := m.fetcher.FetchText(ctx, storyUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to get story page: %w", err)
	}

	payload, err := extractPrefetched(page)
	if err != nil {
		return nil, err
	}

	data, err := m.firstPrefetchedData(payload)
	if err != nil {
		return nil, err
	}

	story, err := parseStory(data)
	if err != nil {
		return nil, err
	}
	m.log.Debugf("story %v: %q by %v, %d parts", story.Id, story.Title, story.AuthorName, len(story.Parts))

	return story, nil
}

// extractPrefetched returns the JSON payload assigned in the prefetch script.
// When several scripts match, the last one wins.
func extractPrefetched(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse story page: %v", model.ErrParse, err)
	}

	script := ""
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if strings.HasPrefix(text, prefetchedPrefix) {
			script = text
		}
	})
	if script == "" {
		return "", fmt.Errorf("%w: %q script not found", model.ErrDataNotFound, prefetchedPrefix)
	}

	_, payload, ok := strings.Cut(script, " = ")
	if !ok {
		return "", fmt.Errorf("%w: %q script has no assignment", model.ErrParse, prefetchedPrefix)
	}
	payload = strings.TrimSuffix(strings.TrimSpace(payload), ";")

	return payload, nil
}

// firstPrefetchedData walks the top-level cache keys in document order and
// returns the first nested "data" object. The payload must still be valid
// JSON as a whole.
func (m *MetadataFetcher) firstPrefetchedData(payload string) (json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(payload))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid prefetched data: %v", model.ErrParse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: prefetched data is not an object", model.ErrParse)
	}

	var found json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid prefetched data: %v", model.ErrParse, err)
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: invalid prefetched data under %q: %v", model.ErrParse, key, err)
		}
		if found != nil {
			m.log.Debugf("ignoring prefetched key %q", key)
			continue
		}

		var entry struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(value, &entry); err != nil || !isObject(entry.Data) {
			m.log.Debugf("prefetched key %q carries no data", key)
			continue
		}
		found = entry.Data
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: invalid prefetched data: %v", model.ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing content after prefetched data", model.ErrParse)
	}

	if found == nil {
		return nil, fmt.Errorf("%w: no prefetched entry carries data", model.ErrDataNotFound)
	}
	return found, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{")
}

// opaqueId accepts both JSON strings and numbers.
type opaqueId string

func (id *opaqueId) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = opaqueId(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = opaqueId(n.String())
	return nil
}

type storyPart struct {
	Id    *opaqueId `json:"id"`
	Title *string   `json:"title"`
}

type storyUser struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
}

type storyGroup struct {
	Title       *string      `json:"title"`
	User        *storyUser   `json:"user"`
	Description *string      `json:"description"`
	ModifyDate  *string      `json:"modifyDate"`
	Rating      *float64     `json:"rating"`
	Cover       *string      `json:"cover"`
	Parts       *[]storyPart `json:"parts"`
}

type storyData struct {
	Id      *opaqueId   `json:"id"`
	Group   *storyGroup `json:"group"`
	TextUrl *struct {
		Text *string `json:"text"`
	} `json:"text_url"`
}

func parseStory(data json.RawMessage) (*model.Story, error) {
	var raw storyData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: unexpected story data: %v", model.ErrParse, err)
	}

	missing := func(field string) error {
		return fmt.Errorf("%w: story data has no %v", model.ErrDataNotFound, field)
	}

	switch {
	case raw.Id == nil:
		return nil, missing("id")
	case raw.Group == nil:
		return nil, missing("group")
	case raw.TextUrl == nil || raw.TextUrl.Text == nil:
		return nil, missing("text_url.text")
	}

	group := raw.Group
	switch {
	case group.Title == nil:
		return nil, missing("group.title")
	case group.User == nil || group.User.Name == nil:
		return nil, missing("group.user.name")
	case group.Cover == nil:
		return nil, missing("group.cover")
	case group.Rating == nil:
		return nil, missing("group.rating")
	case group.Parts == nil:
		return nil, missing("group.parts")
	}

	rating := *group.Rating
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating %v is outside [0, 5]", model.ErrParse, rating)
	}

	story := &model.Story{
		Id:             string(*raw.Id),
		Title:          *group.Title,
		AuthorName:     *group.User.Name,
		AuthorUsername: deref(group.User.Username),
		Description:    deref(group.Description),
		LastModified:   deref(group.ModifyDate),
		Rating:         rating,
		CoverUrl:       *group.Cover,
		TextUrl:        *raw.TextUrl.Text,
		Parts:          make([]*model.ChapterRef, 0, len(*group.Parts)),
	}

	for i, part := range *group.Parts {
		if part.Id == nil {
			return nil, missing(fmt.Sprintf("group.parts[%d].id", i))
		}
		story.Parts = append(story.Parts, &model.ChapterRef{
			Id:    string(*part.Id),
			Title: deref(part.Title),
		})
	}

	return story, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
