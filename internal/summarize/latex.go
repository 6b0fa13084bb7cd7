// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"regexp"
	"strings"
)

// LaTeX-style sub/superscripts as they appear in arXiv titles.
var (
	latexSub = regexp.MustCompile(`\$_\{\s*([^}]+?)\s*\}\$`)
	latexSup = regexp.MustCompile(`\$\^\{\s*([^}]+?)\s*\}\$`)
	bareSub  = regexp.MustCompile(`_(\d+)`)
	bareSup  = regexp.MustCompile(`\^(\d+)`)
)

// CleanTitle rewrites LaTeX-style sub/superscripts to HTML tags so titles
// like "LiCoO$_{2}$" render as "LiCoO<sub>2</sub>" on the site.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = latexSub.ReplaceAllString(title, "<sub>$1</sub>")
	title = latexSup.ReplaceAllString(title, "<sup>$1</sup>")
	title = bareSub.ReplaceAllString(title, "<sub>$1</sub>")
	title = bareSup.ReplaceAllString(title, "<sup>$1</sup>")
	return title
}
