package nrk

import (
	"encoding/xml"
	"fmt"
	"strings"

	"mex/util"
)

type ttmlDocument struct {
	Lang       string          `xml:"lang,attr"`
	Paragraphs []ttmlParagraph `xml:"body>div>p"`
}

type ttmlParagraph struct {
	Begin string `xml:"begin,attr"`
	Dur   string `xml:"dur,attr"`
	Inner string `xml:",innerxml"`
}

// ConvertTTMLToSRT renders the broadcaster's TTML captions as an SRT
// payload, returning the track language as well. Cue timecodes are
// "HH:MM:SS.mmm"; a cue whose seconds field is negative (the rights rows)
// collapses to zero length instead of failing.
func ConvertTTMLToSRT(data []byte) (string, string, error) {
	var doc ttmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", "", fmt.Errorf("failed to parse captions: %w", err)
	}
	if len(doc.Paragraphs) == 0 {
		return "", "", ErrNoCaptionCues
	}

	lang := doc.Lang
	if lang == "" {
		lang = "no"
	}

	var srt strings.Builder
	for pos, paragraph := range doc.Paragraphs {
		begin := util.ParseTimecode(paragraph.Begin)
		duration := util.ParseTimecode(paragraph.Dur)
		fmt.Fprintf(
			&srt, "%d\r\n%s --> %s\r\n%s\r\n\r\n",
			pos,
			util.FormatTimecode(begin),
			util.FormatTimecode(begin+duration),
			paragraphText(paragraph.Inner),
		)
	}
	return lang, srt.String(), nil
}

// paragraphText flattens a cue's mixed content: every text node becomes a
// line, so <br/> splits and styling spans are dropped.
func paragraphText(inner string) string {
	decoder := xml.NewDecoder(strings.NewReader("<p>" + inner + "</p>"))
	var lines []string
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if chars, ok := token.(xml.CharData); ok {
			text := strings.TrimSpace(string(chars))
			if text != "" {
				lines = append(lines, text)
			}
		}
	}
	return strings.Join(lines, "\n")
}
