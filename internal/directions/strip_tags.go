package directions

import "regexp"

var tagPattern = regexp.MustCompile(`<.*?>`)

// StripTags removes angle-bracket tag sequences from instruction text. It is
// a generic tag-stripping pass, not an HTML parser; every caller that
// renders instructions goes through this one function.
func StripTags(text string) string {
	if text == "" {
		return ""
	}
	return tagPattern.ReplaceAllString(text, "")
}
