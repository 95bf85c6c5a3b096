// Package html renders note markdown into a sanitized HTML fragment.
//
// The pipeline is goldmark (GFM, hard line breaks, raw HTML for styled
// blocks) with chroma syntax highlighting, a math inline extension that
// keeps TeX segments intact for client-side typesetting, and a bluemonday
// policy that strips script-executing markup.
package html
