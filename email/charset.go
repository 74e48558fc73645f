package email

import (
	"unicode/utf8"

	"github.com/jamesainslie/go-segopt/postag"
	"github.com/jamesainslie/go-segopt/token"
)

// bodyChars lists the characters allowed inside an RFC 822 local part or
// domain, plus '@'.
const bodyChars = "!\"#$%&'*+-/0123456789=?@" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"^_`" +
	"abcdefghijklmnopqrstuvwxyz" +
	"{|}~."

// bodyCharset is read-only after package initialization.
var bodyCharset = func() (set [utf8.RuneSelf]bool) {
	for i := 0; i < len(bodyChars); i++ {
		set[bodyChars[i]] = true
	}
	return set
}()

// InBodyCharset reports whether text, taken as a whole, is a single member of
// the address body charset. Multi-character texts are never members.
func InBodyCharset(text string) bool {
	return len(text) == 1 && text[0] < utf8.RuneSelf && bodyCharset[text[0]]
}

// IsAddressAtom reports whether tok may open or extend an address candidate
// during the interior scan: a foreign word, or a mixed token whose first
// character is ASCII.
func IsAddressAtom(tok token.Token) bool {
	switch tok.Tag {
	case postag.ForeignWord:
		return true
	case postag.MixedOrOther:
		return tok.Text != "" && tok.Text[0] < utf8.RuneSelf
	}
	return false
}

// IsBoundaryAtom reports whether the final token of a sequence may close an
// open candidate. Mixed tokens must be a body charset member here, which is
// stricter than the first-character test IsAddressAtom applies.
func IsBoundaryAtom(tok token.Token) bool {
	switch tok.Tag {
	case postag.ForeignWord:
		return true
	case postag.MixedOrOther:
		return InBodyCharset(tok.Text)
	}
	return false
}
