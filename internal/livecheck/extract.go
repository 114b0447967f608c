package livecheck

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

const (
	// configMarker opens the player configuration call in the embed page
	configMarker = "ytcfg.set("
	// configEnd closes it
	configEnd = ");window.ytcfg.obfuscatedData_"
)

// scriptTexts returns the text of every <script> element in document order.
// Unparsable pages yield nil.
func scriptTexts(page []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil
	}

	var texts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts
}

// ExtractConfig returns the JSON passed to the first ytcfg.set call of an
// embed page. Script elements are searched first, then the raw page. When
// the closing delimiter is missing the rest of the text is taken, which then
// fails validation.
func ExtractConfig(page []byte) ([]byte, error) {
	candidates := append(scriptTexts(page), string(page))

	for _, text := range candidates {
		idx := strings.Index(text, configMarker)
		if idx < 0 {
			continue
		}

		rest := text[idx+len(configMarker):]
		if end := strings.Index(rest, configEnd); end >= 0 {
			rest = rest[:end]
		}

		blob := []byte(strings.TrimSpace(rest))
		if !gjson.ValidBytes(blob) {
			return nil, ErrInvalidConfigJSON
		}
		return blob, nil
	}

	return nil, ErrMarkerNotFound
}
