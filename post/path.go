package post

import (
	"path/filepath"
	"strings"
)

// CanonicalPath converts a post filename like 2018-04-05-implementing-night-mode.md
// into the url path 2018/04/05/implementing-night-mode/
func CanonicalPath(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Replace(name, "-", "/", 3) + "/"
}

// CanonicalURL joins the site url with the canonical path of a post
func CanonicalURL(baseURL, filename string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + CanonicalPath(filename)
}
