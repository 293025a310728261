package util

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML builds a queryable document from a raw page body.
func ParseHTML(data []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(data))
}

var metaAttrs = []string{"name", "property", "itemprop"}

// MetaContent returns the content of the first meta tag whose name,
// property or itemprop matches any of the given names, in order.
func MetaContent(doc *goquery.Document, names ...string) string {
	for _, name := range names {
		for _, attr := range metaAttrs {
			selection := doc.Find(fmt.Sprintf("meta[%s=%q]", attr, name))
			if content, ok := selection.First().Attr("content"); ok && content != "" {
				return content
			}
		}
	}
	return ""
}

// OpenGraph looks up OpenGraph properties, first hit wins.
func OpenGraph(doc *goquery.Document, props ...string) string {
	for _, prop := range props {
		if content := MetaContent(doc, "og:"+prop); content != "" {
			return content
		}
	}
	return ""
}

// TextByClass returns the trimmed text of the first element carrying the
// given class.
func TextByClass(doc *goquery.Document, class string) string {
	return strings.TrimSpace(doc.Find("." + class).First().Text())
}

// FirstAttr returns the value of attr on the first element that carries
// it anywhere in the document.
func FirstAttr(doc *goquery.Document, attr string) string {
	value, _ := doc.Find("[" + attr + "]").First().Attr(attr)
	return value
}

// SearchRegex runs the pattern over s and returns the first capture group,
// or the whole match when the pattern has no groups.
func SearchRegex(re *regexp.Regexp, s string) (string, bool) {
	match := re.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}
	if len(match) > 1 {
		return match[1], true
	}
	return match[0], true
}

// SearchRegexGroup is SearchRegex for a specific named group.
func SearchRegexGroup(re *regexp.Regexp, s string, group string) (string, bool) {
	match := re.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}
	idx := re.SubexpIndex(group)
	if idx < 0 || idx >= len(match) {
		return "", false
	}
	return match[idx], match[idx] != ""
}
