package base

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var priceRe = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice extracts the first number from a price label such as "Rs. 1,299.00"
// or "$45". Thousands separators are dropped.
func ParsePrice(label string) (float64, bool) {
	m := priceRe.FindString(label)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ResolveImage makes a relative or protocol-relative image reference absolute
// against the page it was found on.
func ResolveImage(pageURL, src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}
