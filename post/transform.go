package post

import (
	"fmt"
	"strings"

	"github.com/latenightswift/post-publisher/site"
)

// DefaultSiteName is the name shown in the attribution line of every post
const DefaultSiteName = "Late Night Swift"

// Replacement substitutes every occurrence of Find with Replace
type Replacement struct {
	Find    string
	Replace string
}

// SiteReplacements returns the ordered substitutions for the liquid tags that
// the site config provides values for
func SiteReplacements(cfg *site.Config) []Replacement {
	return []Replacement{
		{
			Find:    "@{{ site.twitter.username }}",
			Replace: fmt.Sprintf("[@%s](%s)", cfg.TwitterUsername, cfg.TwitterURL),
		},
		{
			Find:    "{{ site.subscribe_url }}",
			Replace: cfg.SubscribeURL,
		},
	}
}

// ApplyReplacements applies each replacement in order. Both sides are literal
// strings, so neither regexp syntax in Find nor $ in Replace is interpreted.
func ApplyReplacements(content string, replacements []Replacement) string {
	for _, r := range replacements {
		if r.Find == "" {
			continue
		}
		content = strings.ReplaceAll(content, r.Find, r.Replace)
	}
	return content
}

// Header returns the title and attribution that are placed above the post body
func Header(title, siteName, postURL string) string {
	return fmt.Sprintf("# %s\n*For optimum flavour, this post is best served at [%s](%s)*\n\n---\n\n",
		title, siteName, postURL)
}

// Options controls how a post is transformed for publishing
type Options struct {
	URL          string // canonical url of the post
	SiteName     string // defaults to DefaultSiteName
	Replacements []Replacement
}

// Transform builds the content that is submitted to the publishing platform
func Transform(d *Document, opts Options) (string, error) {
	title, err := d.Title()
	if err != nil {
		return "", err
	}

	siteName := opts.SiteName
	if siteName == "" {
		siteName = DefaultSiteName
	}

	content := Header(title, siteName, opts.URL) + d.Body
	return ApplyReplacements(content, opts.Replacements), nil
}
