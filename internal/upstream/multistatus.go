package upstream

import "encoding/xml"

// multistatus mirrors a WebDAV PROPFIND response body just enough to list
// children.
type multistatus struct {
	XMLName   xml.Name   `xml:"multistatus"`
	Responses []response `xml:"response"`
}

type response struct {
	Href     string   `xml:"href"`
	PropStat propstat `xml:"propstat"`
}

type propstat struct {
	Prop prop `xml:"prop"`
}

type prop struct {
	ResourceType  resourceType `xml:"resourcetype"`
	ContentLength int64        `xml:"getcontentlength"`
	DisplayName   string       `xml:"displayname"`
}

type resourceType struct {
	Collection *struct{} `xml:"collection"`
}

func (r response) isCollection() bool {
	return r.PropStat.Prop.ResourceType.Collection != nil
}
