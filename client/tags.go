package client

// TagStyle is a background/foreground color pair for rendering a card tag.
type TagStyle struct {
	Background string
	Text       string
}

var tagPalette = []TagStyle{
	{Background: "#F9EEE3", Text: "#D58D49"},
	{Background: "#E7F7DB", Text: "#86D549"},
	{Background: "#F7DBF0", Text: "#D549B6"},
	{Background: "#DBE6F7", Text: "#4981D5"},
}

// TagColor returns the style for the i-th tag on a card. Styles cycle through
// a fixed palette so a tag's color depends only on its position.
func TagColor(i int) TagStyle {
	if i < 0 {
		i = -i
	}
	return tagPalette[i%len(tagPalette)]
}
