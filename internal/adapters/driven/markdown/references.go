// Package markdown reads image references back out of Markdown documents.
package markdown

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	parserOnce     sync.Once
	parserInstance goldmark.Markdown
)

// getParser returns the shared CommonMark parser. Its configuration never
// changes, so one instance serves every call.
func getParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New()
	})
	return parserInstance
}

// ImageDestinations returns the destination of every image in source, in
// document order. Images inside code spans and code blocks are not images
// and are not reported.
func ImageDestinations(source []byte) []string {
	document := getParser().Parser().Parse(text.NewReader(source))

	var destinations []string
	_ = ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if image, ok := node.(*ast.Image); ok {
			destinations = append(destinations, string(image.Destination))
		}
		return ast.WalkContinue, nil
	})
	return destinations
}
