package passage

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// locatorText accepts a chapter or verse encoded either as a JSON string or
// as a JSON number.
type locatorText string

func (l *locatorText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = locatorText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("chapter/verse must be a string or number, got %s", data)
	}
	*l = locatorText(n.String())
	return nil
}

type wireVerse struct {
	Book    string      `json:"bookname"`
	Chapter locatorText `json:"chapter"`
	Verse   locatorText `json:"verse"`
	Text    string      `json:"text"`
}

func decodeJSON(data []byte) ([]Verse, error) {
	var wire []wireVerse
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	verses := make([]Verse, len(wire))
	for i, w := range wire {
		verses[i] = Verse{
			Book:    w.Book,
			Chapter: string(w.Chapter),
			Verse:   string(w.Verse),
			Text:    w.Text,
		}
	}
	return verses, nil
}

// Compiled once; the XML body is <bible><item>...</item>...</bible>.
var (
	itemExpr    = xpath.MustCompile("//item")
	bookExpr    = xpath.MustCompile("bookname")
	chapterExpr = xpath.MustCompile("chapter")
	verseExpr   = xpath.MustCompile("verse")
	textExpr    = xpath.MustCompile("*[local-name()='text']")
)

func decodeXML(r io.Reader) ([]Verse, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, err
	}

	items := xmlquery.QuerySelectorAll(doc, itemExpr)
	verses := make([]Verse, 0, len(items))
	for _, item := range items {
		verses = append(verses, Verse{
			Book:    childText(item, bookExpr),
			Chapter: childText(item, chapterExpr),
			Verse:   childText(item, verseExpr),
			Text:    childText(item, textExpr),
		})
	}
	return verses, nil
}

func childText(n *xmlquery.Node, expr *xpath.Expr) string {
	child := xmlquery.QuerySelector(n, expr)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.InnerText())
}
