package render

import (
	"bytes"
	"encoding/xml"
)

const (
	labelFontSize = 12.0
	labelFontMin  = 6.0
	labelFontMax  = 48.0
)

// LabelFontSize returns the label size for a zoom factor.
func LabelFontSize(zoom float64) float64 {
	return max(labelFontMin, min(labelFontMax, labelFontSize*zoom))
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
