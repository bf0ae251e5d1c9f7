package model

import (
	"encoding/xml"
	"strconv"
)

type TocNCXHead struct {
	XMLName xml.Name         `xml:"head"`
	Meta    []TocNCXHeadMeta `xml:"meta"`
}

type TocNCXHeadMeta struct {
	Content string `xml:"content,attr"`
	Name    string `xml:"name,attr"`
}

// NewTocNCXHead returns the head of a flat, single level NCX.
func NewTocNCXHead(uid string) *TocNCXHead {
	return &TocNCXHead{
		Meta: []TocNCXHeadMeta{
			{Name: "dtb:uid", Content: uid},
			{Name: "dtb:depth", Content: "1"},
			{Name: "dtb:totalPageCount", Content: "0"},
			{Name: "dtb:maxPageNumber", Content: "0"},
		},
	}
}

func (h *TocNCXHead) Marshal() (string, error) {
	xmlBytes, err := xml.Marshal(h)
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}

type NavPoint struct {
	Id        string          `xml:"id,attr"`
	PlayOrder int             `xml:"playOrder,attr"`
	Label     string          `xml:"navLabel>text"`
	Content   NavPointContent `xml:"content"`
}

type NavPointContent struct {
	Src string `xml:"src,attr"`
}

type NavMap struct {
	XMLName xml.Name    `xml:"navMap"`
	Points  []*NavPoint `xml:"navPoint"`
}

// NewNavMap lists the chapters in the given order, play order starting at 1.
func NewNavMap(chapters []*ChapterDocument) *NavMap {
	navMap := &NavMap{Points: make([]*NavPoint, 0, len(chapters))}
	for i, chapter := range chapters {
		navMap.Points = append(navMap.Points, &NavPoint{
			Id:        "navpoint-" + strconv.Itoa(i+1),
			PlayOrder: i + 1,
			Label:     chapter.Title,
			Content:   NavPointContent{Src: chapter.FileName},
		})
	}
	return navMap
}

func (n *NavMap) Marshal() (string, error) {
	xmlBytes, err := xml.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}
