package msdftext

import "golang.org/x/text/unicode/norm"

// NormalizeText returns s in Unicode normalization form C.
// Atlases are generated from precomposed code points, so decomposed input
// such as "e" + U+0301 would otherwise miss the glyph for "é".
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}

// TruncateText truncates text to fit within maxWidth, adding ellipsis if needed.
func TruncateText(face Face, text string, maxWidth, scale float32) (string, error) {
	return TruncateTextWithSuffix(face, text, maxWidth, scale, "..")
}

// TruncateTextWithSuffix truncates text and adds a custom suffix.
// If not even the suffix fits, the suffix alone is returned.
func TruncateTextWithSuffix(face Face, text string, maxWidth, scale float32, suffix string) (string, error) {
	full, err := face.MeasureText(text, scale)
	if err != nil {
		return "", err
	}
	if full.X <= maxWidth {
		return text, nil
	}

	suffixSize, err := face.MeasureText(suffix, scale)
	if err != nil {
		return "", err
	}
	targetWidth := maxWidth - suffixSize.X

	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		size, err := face.MeasureText(string(runes), scale)
		if err != nil {
			return "", err
		}
		if size.X <= targetWidth {
			return string(runes) + suffix, nil
		}
	}

	return suffix, nil
}
