package pipeline

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRawImages applies an ImageResolver to <img> elements that came
// from raw HTML in the Markdown source, which the image renderer never sees.
// Only img tags with a local src are rebuilt; every other token is copied
// byte for byte.
//
// Does NOT rewrite:
//   - srcset attributes
//   - CSS url() references
//   - picture/source elements
func RewriteRawImages(htmlContent string, images ImageResolver) (string, error) {
	if images == nil || !strings.Contains(strings.ToLower(htmlContent), "<img") {
		return htmlContent, nil
	}

	var out strings.Builder
	out.Grow(len(htmlContent))

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return out.String(), nil
			}
			return "", z.Err()
		}

		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.WriteString(raw)
			continue
		}

		tok := z.Token()
		if tok.DataAtom != atom.Img {
			out.WriteString(raw)
			continue
		}

		rewritten, changed, err := rewriteImgToken(tok, images)
		if err != nil {
			return "", err
		}
		if !changed {
			out.WriteString(raw)
			continue
		}
		out.WriteString(rewritten)
	}
}

// rewriteImgToken resolves the src attribute of an img token.
func rewriteImgToken(tok html.Token, images ImageResolver) (string, bool, error) {
	for i, attr := range tok.Attr {
		if attr.Key != "src" || !isLocalReference(attr.Val) {
			continue
		}

		src, err := images.Resolve(attr.Val)
		if err != nil {
			return "", false, err
		}
		if src == attr.Val {
			return "", false, nil
		}

		tok.Attr[i].Val = src
		return tok.String(), true, nil
	}
	return "", false, nil
}
