package service

import "strings"

// slugTranslit maps the Turkish letters that appear in catalog and blog
// titles to their closest ASCII form. Anything outside this fixed set passes
// through untouched.
var slugTranslit = map[rune]rune{
	'ç': 'c', 'Ç': 'c',
	'ğ': 'g', 'Ğ': 'g',
	'ı': 'i', 'İ': 'i',
	'ö': 'o', 'Ö': 'o',
	'ş': 's', 'Ş': 's',
	'ü': 'u', 'Ü': 'u',
}

// Slugify derives a URL slug from a title: transliterate the fixed letter
// set, lower-case, and turn spaces into hyphens.
//
// The transliteration runs before ToLower on purpose — Go lower-cases 'İ'
// to "i" plus a combining dot, which would leave a stray mark in the slug.
func Slugify(title string) string {
	mapped := strings.Map(func(r rune) rune {
		if repl, ok := slugTranslit[r]; ok {
			return repl
		}
		return r
	}, strings.TrimSpace(title))

	lowered := strings.ToLower(mapped)
	return strings.ReplaceAll(lowered, " ", "-")
}
