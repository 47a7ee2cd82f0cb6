package styles

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

func init() {
	styles.Register(ExoTheme)
	styles.Register(ExoLightTheme)
}

// ExoTheme is the dark syntax theme shipped with exo
var ExoTheme = chroma.MustNewStyle("exo", chroma.StyleEntries{
	chroma.Background: "bg:#1c1c1c",
	chroma.Text:       "#d0d0d0",
	chroma.Error:      "#ff5f5f bold",

	// Keywords
	chroma.Keyword:          "bold #87afff",
	chroma.KeywordConstant:  "#d7afff",
	chroma.KeywordNamespace: "bold #ff87af",
	chroma.KeywordType:      "#5fd7d7",

	// Strings
	chroma.String:       "#d7d787",
	chroma.StringEscape: "#ffaf5f",
	chroma.StringRegex:  "#ffaf5f",

	// Numbers
	chroma.Number: "#d7afff",

	// Names
	chroma.NameFunction:  "#87d787",
	chroma.NameBuiltin:   "#5fd7d7",
	chroma.NameClass:     "bold #87d787",
	chroma.NameDecorator: "#ffaf5f",
	chroma.NameTag:       "#87afff",
	chroma.NameAttribute: "#87d787",

	chroma.Operator:    "#ff87af",
	chroma.Punctuation: "#a8a8a8",

	chroma.Comment:        "italic #767676",
	chroma.CommentPreproc: "#ff87af",

	chroma.GenericDeleted:  "#ff5f5f",
	chroma.GenericInserted: "#87d787",
	chroma.GenericHeading:  "bold #d0d0d0",
	chroma.GenericEmph:     "italic",
	chroma.GenericStrong:   "bold",
})

// ExoLightTheme is a light variant
var ExoLightTheme = chroma.MustNewStyle("exo-light", chroma.StyleEntries{
	chroma.Background: "bg:#fafafa",
	chroma.Text:       "#383a42",

	chroma.Keyword:          "bold #a626a4",
	chroma.KeywordConstant:  "#986801",
	chroma.KeywordNamespace: "bold #a626a4",
	chroma.KeywordType:      "#0184bc",

	chroma.String:       "#50a14f",
	chroma.StringEscape: "#986801",

	chroma.Number: "#986801",

	chroma.NameFunction: "#4078f2",
	chroma.NameBuiltin:  "#4078f2",
	chroma.NameClass:    "#c18401",

	chroma.Operator:    "#383a42",
	chroma.Punctuation: "#383a42",

	chroma.Comment: "italic #a0a1a7",
})
