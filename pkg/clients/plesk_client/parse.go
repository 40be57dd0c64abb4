package plesk_client

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
)

type DetailSource string

const (
	SourceRegex   DetailSource = "regex"
	SourceXPath   DetailSource = "xpath"
	SourceSummary DetailSource = "summary"
)

const summaryLimit = 180

var (
	errtextPattern = regexp.MustCompile(`(?is)<errtext>\s*(.*?)\s*</errtext>`)
	errcodePattern = regexp.MustCompile(`(?is)<errcode>\s*(.*?)\s*</errcode>`)
)

type failureDetail struct {
	Text   string
	Source DetailSource
}

// looksOk classifies a response body. An explicit status element wins, a body
// mentioning "result" and "ok" without an errtext is accepted as well.
func looksOk(body string) bool {
	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "<status>ok</status>"):
		return true
	case strings.Contains(lower, "<status>error</status>"):
		return false
	}
	return strings.Contains(lower, "result") && strings.Contains(lower, "ok") && !strings.Contains(lower, "<errtext>")
}

// extractFailure tries the cheap regex first since it copes with broken XML,
// then a real XML parse, and finally summarizes whatever text the body has.
func extractFailure(body string) failureDetail {
	steps := []struct {
		source  DetailSource
		extract func(string) string
	}{
		{SourceRegex, errorFromTags},
		{SourceXPath, errorFromXPath},
		{SourceSummary, summarizeBody},
	}
	for _, step := range steps {
		if text := step.extract(body); text != "" {
			return failureDetail{Text: text, Source: step.source}
		}
	}
	return failureDetail{}
}

func errorFromTags(body string) string {
	var errtext, errcode string
	if m := errtextPattern.FindStringSubmatch(body); m != nil {
		errtext = strings.TrimSpace(html.UnescapeString(m[1]))
	}
	if m := errcodePattern.FindStringSubmatch(body); m != nil {
		errcode = strings.TrimSpace(m[1])
	}
	return formatError(errtext, errcode)
}

func errorFromXPath(body string) string {
	doc, err := xmlquery.Parse(strings.NewReader(body))
	if err != nil || doc == nil {
		return ""
	}
	var errtext, errcode string
	if n := xmlquery.FindOne(doc, "//errtext"); n != nil {
		errtext = strings.TrimSpace(n.InnerText())
	}
	if n := xmlquery.FindOne(doc, "//errcode"); n != nil {
		errcode = strings.TrimSpace(n.InnerText())
	}
	return formatError(errtext, errcode)
}

func formatError(errtext string, errcode string) string {
	switch {
	case errtext != "" && errcode != "":
		return errtext + " (code " + errcode + ")"
	case errtext != "":
		return errtext
	case errcode != "":
		return "code " + errcode
	}
	return ""
}

// summarizeBody reduces an HTML or plain text body to its visible text,
// whitespace collapsed and cut at summaryLimit characters.
func summarizeBody(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	text := body
	if doc, err := htmlquery.Parse(strings.NewReader(body)); err == nil {
		for _, n := range htmlquery.Find(doc, "//script|//style") {
			n.Parent.RemoveChild(n)
		}
		text = htmlquery.InnerText(doc)
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) > summaryLimit {
		runes := []rune(text)
		text = string(runes[:summaryLimit]) + "…"
	}
	return text
}
