package watty

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strconv"

	"watty-downloader/epub"
	"watty-downloader/model"
	"watty-downloader/template"
	"watty-downloader/utils"

	"github.com/google/uuid"
)

// Progress is notified once the chapter count is known and after every
// chapter is assembled.
type Progress interface {
	SetTotal(total int)
	Increment()
}

// Options configure an Assembler. Zero fields take the DefaultOptions value.
type Options struct {
	EntryPageTitle string
	// Page template files. Empty means the embedded defaults.
	EntryPageTemplate   string
	ChapterPageTemplate string
	Language            string
	FullEmptyStars      bool
	// SanitizeFilename cleans the title when Build derives the file name.
	SanitizeFilename bool

	Fetcher  model.Fetcher
	Logger   *utils.Logger
	Progress Progress
}

// DefaultOptions uses the "Intro" entry page title and English.
func DefaultOptions() Options {
	return Options{
		EntryPageTitle: "Intro",
		Language:       "en",
	}
}

// Assembler turns a story page into a model.Book. It fetches strictly one
// resource at a time.
type Assembler struct {
	opts     Options
	fetcher  model.Fetcher
	log      *utils.Logger
	metadata *MetadataFetcher
}

// NewAssembler fills unset options from DefaultOptions. A nil Fetcher gets a
// resty client with default settings.
func NewAssembler(opts Options) *Assembler {
	defaults := DefaultOptions()
	if opts.EntryPageTitle == "" {
		opts.EntryPageTitle = defaults.EntryPageTitle
	}
	if opts.Language == "" {
		opts.Language = defaults.Language
	}
	if opts.Fetcher == nil {
		clientOpts := utils.DefaultClientOptions()
		clientOpts.Logger = opts.Logger
		opts.Fetcher = utils.NewRestyClient(clientOpts)
	}

	return &Assembler{
		opts:     opts,
		fetcher:  opts.Fetcher,
		log:      opts.Logger,
		metadata: NewMetadataFetcher(opts.Fetcher, opts.Logger),
	}
}

// Assemble builds the book for the story at storyUrl in memory: intro page,
// cover, then every chapter in order with its images. Any failed fetch
// aborts.
func (a *Assembler) Assemble(ctx context.Context, storyUrl string) (*model.Book, error) {
	introTemplate, err := template.LoadPage(a.opts.EntryPageTemplate, template.IntroXHTML)
	if err != nil {
		return nil, err
	}
	chapterTemplate, err := template.LoadPage(a.opts.ChapterPageTemplate, template.ChapterXHTML)
	if err != nil {
		return nil, err
	}

	story, err := a.metadata.FetchMetadata(ctx, storyUrl)
	if err != nil {
		return nil, err
	}

	stars := RenderStars(story.Rating, a.opts.FullEmptyStars)
	endpoint := ChapterEndpoint(story.TextUrl)

	fields := template.Fields{
		"book_title":        story.Title,
		"author":            story.AuthorName,
		"author_user":       story.AuthorUsername,
		"description":       story.Description,
		"last_modification": story.LastModified,
		"rating":            strconv.FormatFloat(story.Rating, 'f', 2, 64),
		"stars":             stars,
	}

	book := &model.Book{
		Identifier:  story.Id,
		Uuid:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(storyUrl)).String(),
		Title:       story.Title,
		Author:      story.AuthorName,
		Description: story.Description,
		Language:    a.opts.Language,
		Modified:    story.LastModified,
		Source:      storyUrl,
		Chapters:    make([]*model.ChapterDocument, 0, len(story.Parts)+1),
	}
	book.Chapters = append(book.Chapters, &model.ChapterDocument{
		Title:    a.opts.EntryPageTitle,
		Number:   0,
		FileName: model.IntroFileName,
		Content:  template.FormatPage(introTemplate, fields),
	})

	a.log.Infof("Getting cover %v", story.CoverUrl)
	cover, err := a.fetcher.Fetch(ctx, story.CoverUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to get cover: %w", err)
	}
	book.Cover = &model.ImageAsset{
		Id:        "cover",
		Data:      cover,
		MediaType: model.MediaTypeJPEG,
		FileName:  model.CoverFileName,
	}

	if a.opts.Progress != nil {
		a.opts.Progress.SetTotal(len(story.Parts))
	}
	for i, part := range story.Parts {
		chapter, err := a.assembleChapter(ctx, book, chapterTemplate, fields, endpoint, i+1, part)
		if err != nil {
			return nil, err
		}
		book.Chapters = append(book.Chapters, chapter)
		if a.opts.Progress != nil {
			a.opts.Progress.Increment()
		}
	}

	return book, nil
}

func (a *Assembler) assembleChapter(
	ctx context.Context,
	book *model.Book,
	chapterTemplate string,
	fields template.Fields,
	endpoint string,
	number int,
	part *model.ChapterRef,
) (*model.ChapterDocument, error) {
	chapterUrl := ChapterUrl(endpoint, part.Id)
	a.log.Infof("Getting chapter %d %q", number, part.Title)

	text, err := a.fetcher.FetchText(ctx, chapterUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter %v: %w", part.Id, err)
	}

	base, err := url.Parse(chapterUrl)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid chapter url %q: %v", model.ErrParse, chapterUrl, err)
	}
	doc, err := parseFragment(text)
	if err != nil {
		return nil, err
	}
	if err := a.rewriteImages(ctx, book, base, doc); err != nil {
		return nil, err
	}
	rendered, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render chapter %v: %w", part.Id, err)
	}

	pageFields := maps.Clone(fields)
	pageFields["title"] = part.Title
	pageFields["text"] = rendered
	pageFields["number"] = strconv.Itoa(number)

	return &model.ChapterDocument{
		Title:    part.Title,
		Number:   number,
		FileName: fmt.Sprintf("chapter-%03d.xhtml", number),
		Content:  template.FormatPage(chapterTemplate, pageFields),
	}, nil
}

// Build assembles the story and writes it to file, or to "{title}.epub" in
// the working directory when file is empty. The title is used verbatim
// unless SanitizeFilename is set. Nothing is written unless the whole book
// was assembled.
func (a *Assembler) Build(ctx context.Context, storyUrl, file string) (*model.Book, string, error) {
	book, err := a.Assemble(ctx, storyUrl)
	if err != nil {
		return nil, "", err
	}
	if file == "" {
		file = a.DefaultFileName(book)
	}
	if err := epub.WriteBook(book, file); err != nil {
		return nil, "", fmt.Errorf("failed to write epub: %w", err)
	}
	return book, file, nil
}

// DefaultFileName is the output name Build uses when none is given.
func (a *Assembler) DefaultFileName(book *model.Book) string {
	if a.opts.SanitizeFilename {
		return utils.CleanDirName(book.Title) + ".epub"
	}
	return book.Title + ".epub"
}
