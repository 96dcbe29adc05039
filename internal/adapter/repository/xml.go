package repository

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// The feed declares windows-1251; encoding/xml only handles UTF-8 natively.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch charset {
	case "windows-1251":
		return charmap.Windows1251.NewDecoder().Reader(input), nil
	}

	return nil, fmt.Errorf("charset %q is not defined", charset)
}

type dailyDocument struct {
	XMLName xml.Name      `xml:"ValCurs"`
	Date    string        `xml:"Date,attr"`
	Valutes []dailyValute `xml:"Valute"`
}

type dailyValute struct {
	ID       string `xml:"ID,attr"`
	NumCode  string `xml:"NumCode"`
	CharCode string `xml:"CharCode"`
	Nominal  string `xml:"Nominal"`
	Name     string `xml:"Name"`
	Value    string `xml:"Value"`
}

type dynamicDocument struct {
	XMLName xml.Name        `xml:"ValCurs"`
	Records []dynamicRecord `xml:"Record"`
}

type dynamicRecord struct {
	Date    string `xml:"Date,attr"`
	Nominal string `xml:"Nominal"`
	Value   string `xml:"Value"`
}

func decodeDaily(b []byte) (*dailyDocument, error) {
	var doc dailyDocument
	if err := newDecoder(b).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func decodeDynamic(b []byte) (*dynamicDocument, error) {
	var doc dynamicDocument
	if err := newDecoder(b).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func newDecoder(b []byte) *xml.Decoder {
	decoder := xml.NewDecoder(bytes.NewReader(b))
	decoder.CharsetReader = charsetReader
	return decoder
}
