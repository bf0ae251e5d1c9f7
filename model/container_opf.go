package model

import "encoding/xml"

const (
	NamespaceDC  = "http://purl.org/dc/elements/1.1/"
	NamespaceOPF = "http://www.idpf.org/2007/opf"
)

type DublinCoreMetadata struct {
	XMLName  xml.Name `xml:"metadata"`
	XmlnsDC  string   `xml:"xmlns:dc,attr"`
	XmlnsOPF string   `xml:"xmlns:opf,attr"`

	// required
	Titles      []DCTitle      `xml:"dc:title"`
	Identifiers []DCIdentifier `xml:"dc:identifier"`
	Languages   []DCLanguage   `xml:"dc:language"`

	Creators     []DCCreator     `xml:"dc:creator"`
	Descriptions []DCDescription `xml:"dc:description"`
	Sources      []DCSource      `xml:"dc:source"`

	// EPUB3 <meta> extensions
	Metas []DublinCoreMeta `xml:"meta"`
}

func NewDublinCoreMetadata() *DublinCoreMetadata {
	return &DublinCoreMetadata{XmlnsDC: NamespaceDC, XmlnsOPF: NamespaceOPF}
}

func (d *DublinCoreMetadata) Marshal() (string, error) {
	xmlBytes, err := xml.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}

type DCTitle struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr,omitempty"`
}

type DCIdentifier struct {
	Value  string `xml:",chardata"`
	ID     string `xml:"id,attr,omitempty"`
	Scheme string `xml:"opf:scheme,attr,omitempty"`
}

type DCLanguage struct {
	Value string `xml:",chardata"`
}

type DCCreator struct {
	Value  string `xml:",chardata"`
	ID     string `xml:"id,attr,omitempty"`
	Role   string `xml:"opf:role,attr,omitempty"`
	FileAs string `xml:"opf:file-as,attr,omitempty"`
}

type DCDescription struct {
	Value string `xml:",chardata"`
}

// DCSource is the story page the book was built from.
type DCSource struct {
	Value string `xml:",chardata"`
}

type DublinCoreMeta struct {
	Name     string `xml:"name,attr,omitempty"`
	Content  string `xml:"content,attr,omitempty"`
	Value    string `xml:",chardata"`
	Property string `xml:"property,attr,omitempty"`
}

type Manifest struct {
	XMLName xml.Name       `xml:"manifest"`
	Items   []ManifestItem `xml:"item"`
}

func (m *Manifest) Marshal() (string, error) {
	xmlBytes, err := xml.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}

type ManifestItem struct {
	ID         string `xml:"id,attr"`
	Link       string `xml:"href,attr"`
	Media      string `xml:"media-type,attr,omitempty"`
	Properties string `xml:"properties,attr,omitempty"`
}

type Spine struct {
	XMLName xml.Name    `xml:"spine"`
	Toc     string      `xml:"toc,attr,omitempty"`
	Items   []SpineItem `xml:"itemref"`
}

func (s *Spine) Marshal() (string, error) {
	xmlBytes, err := xml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(xmlBytes), nil
}

type SpineItem struct {
	IDref string `xml:"idref,attr"`
}
