package tnetstring

import "fmt"

// Tag is the type byte that terminates a tnetstring.
type Tag byte

const (
	TagString  Tag = ','
	TagInteger Tag = '#'
	TagFloat   Tag = '^'
	TagBool    Tag = '!'
	TagNull    Tag = '~'
	TagDict    Tag = '}'
	TagList    Tag = ']'
)

// Valid reports whether t is one of the seven known tags.
func (t Tag) Valid() bool {
	switch t {
	case TagString, TagInteger, TagFloat, TagBool, TagNull, TagDict, TagList:
		return true
	}
	return false
}

// Container reports whether payloads with this tag hold nested tnetstrings.
func (t Tag) Container() bool {
	return t == TagDict || t == TagList
}

func (t Tag) String() string {
	switch t {
	case TagString:
		return "string"
	case TagInteger:
		return "integer"
	case TagFloat:
		return "float"
	case TagBool:
		return "bool"
	case TagNull:
		return "null"
	case TagDict:
		return "dict"
	case TagList:
		return "list"
	}
	return fmt.Sprintf("Tag(%q)", rune(t))
}
