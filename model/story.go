package model

type ChapterRef struct {
	Id    string
	Title string
}

// Story is the metadata of a serialized story as found in the platform's
// prefetched page data.
type Story struct {
	Id             string
	Title          string
	AuthorName     string
	AuthorUsername string
	Description    string
	LastModified   string
	Rating         float64
	CoverUrl       string
	TextUrl        string
	Parts          []*ChapterRef
}
