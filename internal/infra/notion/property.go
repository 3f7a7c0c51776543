package notion

import (
	"strings"
	"time"
)

// Property is a single page property in the store's wire shape, covering
// the value kinds this system reads and writes.
type Property struct {
	Title    []RichText   `json:"title,omitempty"`
	RichText []RichText   `json:"rich_text,omitempty"`
	Date     *DateValue   `json:"date,omitempty"`
	Select   *SelectValue `json:"select,omitempty"`
	Checkbox *bool        `json:"checkbox,omitempty"`
	Number   *float64     `json:"number,omitempty"`
	URL      string       `json:"url,omitempty"`
}

type RichText struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type DateValue struct {
	Start string `json:"start,omitempty"`
}

type SelectValue struct {
	Name string `json:"name"`
}

func TitleProp(s string) Property {
	return Property{Title: []RichText{{Text: &TextContent{Content: s}}}}
}

func TextProp(s string) Property {
	return Property{RichText: []RichText{{Text: &TextContent{Content: s}}}}
}

func DateProp(start string) Property {
	return Property{Date: &DateValue{Start: start}}
}

func SelectProp(name string) Property {
	return Property{Select: &SelectValue{Name: name}}
}

func CheckboxProp(b bool) Property {
	return Property{Checkbox: &b}
}

func NumberProp(n float64) Property {
	return Property{Number: &n}
}

func URLProp(u string) Property {
	return Property{URL: u}
}

// PlainText concatenates the text blocks of a title or rich-text property.
func (p Property) PlainText() string {
	blocks := p.Title
	if len(blocks) == 0 {
		blocks = p.RichText
	}
	var b strings.Builder
	for _, rt := range blocks {
		if rt.PlainText != "" {
			b.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

// DateStart returns the start of a date property, empty when unset.
func (p Property) DateStart() string {
	if p.Date == nil {
		return ""
	}
	return p.Date.Start
}

// SelectName returns the select option name, empty when unset.
func (p Property) SelectName() string {
	if p.Select == nil {
		return ""
	}
	return p.Select.Name
}

// isoUTC renders t as UTC-offset ISO 8601, the form persisted for all
// timestamps.
func isoUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
