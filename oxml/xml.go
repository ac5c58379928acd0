package oxml

import (
	"encoding/xml"
)

const (
	typeSheetUrl = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	typeDocUrl   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

const (
	rootRels        = "_rels/.rels"
	defaultWorkbook = "xl/workbook.xml"
)

type xmlWorkbook struct {
	XMLName xml.Name   `xml:"workbook"`
	Sheets  []xmlSheet `xml:"sheets>sheet"`
}

type xmlSheet struct {
	XMLName xml.Name `xml:"sheet"`
	Id      string   `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	Name    string   `xml:"name,attr"`
	Index   int      `xml:"sheetId,attr"`
}

type xmlRelations struct {
	XMLName   xml.Name      `xml:"Relationships"`
	Relations []xmlRelation `xml:"Relationship"`
}

type xmlRelation struct {
	XMLName xml.Name `xml:"Relationship"`
	Target  string   `xml:",attr"`
	Id      string   `xml:",attr"`
	Type    string   `xml:",attr"`
}
