package dialogue

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// namePrefixes are stripped from the start of an utterance before the
// remainder is treated as the speaker's name.
var namePrefixes = []string{
	"my name is",
	"i am",
	"i'm",
	"call me",
	"this is",
	"it's",
	"name is",
}

// phoneFillers are removed from an utterance before digit matching.
var phoneFillers = []string{
	"my phone is",
	"phone number is",
	"number is",
	"call me on",
	"phone",
	"number",
}

var (
	phoneSeparators = regexp.MustCompile(`[\s\-()]`)
	// Kenyan phone formats, tried in order; the first hit wins.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+254\d{9}`),
		regexp.MustCompile(`254\d{9}`),
		regexp.MustCompile(`0[17]\d{8}`),
		regexp.MustCompile(`[17]\d{8}`),
	}
)

// ExtractName pulls a person's name out of free text. A known prefix ("my
// name is ...") always wins; otherwise the whole input is accepted as a name
// only when it is 2-50 characters of letters and spaces.
func ExtractName(text string) (string, bool) {
	text = strings.TrimSpace(text)
	textLower := strings.ToLower(text)

	for _, prefix := range namePrefixes {
		if strings.HasPrefix(textLower, prefix) {
			name := strings.TrimSpace(text[len(prefix):])
			if name == "" {
				return "", false
			}
			return titleCase(name), true
		}
	}

	length := utf8.RuneCountInString(text)
	if length < 2 || length > 50 {
		return "", false
	}
	for _, r := range strings.ReplaceAll(text, " ", "") {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return titleCase(text), true
}

// ExtractPhone pulls a Kenyan phone number out of free text, normalized to
// the +254XXXXXXXXX form used for SMS delivery.
func ExtractPhone(text string) (string, bool) {
	cleaned := strings.ToLower(text)
	for _, filler := range phoneFillers {
		cleaned = strings.ReplaceAll(cleaned, filler, "")
	}
	cleaned = phoneSeparators.ReplaceAllString(cleaned, "")

	for _, pattern := range phonePatterns {
		phone := pattern.FindString(cleaned)
		if phone == "" {
			continue
		}
		switch {
		case strings.HasPrefix(phone, "0"):
			return "+254" + phone[1:], true
		case strings.HasPrefix(phone, "254"):
			return "+" + phone, true
		case !strings.HasPrefix(phone, "+"):
			return "+254" + phone, true
		default:
			return phone, true
		}
	}
	return "", false
}

// titleCase capitalizes each word the way a name is written: first letter
// upper, the rest lower ("JANE" becomes "Jane").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
