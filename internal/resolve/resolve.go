// Package resolve maps a paper's canonical metadata link to a downloadable
// document location.
package resolve

import "strings"

// PDFURL rewrites an arXiv abstract-page link to its PDF download location:
// "https://arxiv.org/abs/1706.03762" becomes
// "https://arxiv.org/pdf/1706.03762.pdf". Links that are not arXiv abstract
// pages pass through unchanged, so arbitrary direct document URIs work too.
func PDFURL(link string) string {
	if !strings.Contains(link, "arxiv.org/abs/") {
		return link
	}
	pdfURL := strings.Replace(link, "/abs/", "/pdf/", 1)
	if !strings.HasSuffix(pdfURL, ".pdf") {
		pdfURL += ".pdf"
	}
	return pdfURL
}
