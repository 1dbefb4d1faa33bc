// Package publish turns a local Jekyll post into a draft on Medium
package publish

import (
	"context"
	"fmt"
	"io"

	"github.com/latenightswift/post-publisher/markdown"
	"github.com/latenightswift/post-publisher/medium"
	"github.com/latenightswift/post-publisher/post"
	"github.com/latenightswift/post-publisher/site"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the site that canonical urls point to
const DefaultBaseURL = "https://www.latenightswift.com"

// Tags is the fixed set of tags given to every draft
var Tags = []string{"Swift", "iOS App Development", "Xcode"}

// Publisher is the part of the Medium API needed to create a draft
type Publisher interface {
	Authenticate(ctx context.Context, token string) (*medium.Session, error)
	CurrentUser(ctx context.Context, s *medium.Session) (*medium.User, error)
	CreatePost(ctx context.Context, s *medium.Session, userID string, r medium.CreatePostRequest) (*medium.Post, error)
}

// Input is everything needed to publish one post
type Input struct {
	PostPath string
	Site     *site.Config
	Token    string
	BaseURL  string // defaults to DefaultBaseURL
	SiteName string // defaults to post.DefaultSiteName
	Format   string // medium.FormatMarkdown or medium.FormatHTML
	DryRun   bool
	Out      io.Writer // receives status lines, may be nil
}

// Result describes a run. Post is nil for a dry run.
type Result struct {
	Title        string
	CanonicalURL string
	Content      string
	User         *medium.User
	Post         *medium.Post
}

// Prepare loads and transforms a post without touching the network. It
// returns a *post.TemplateTagError if liquid tags remain in the output.
func Prepare(in Input) (*Result, error) {
	doc, err := post.Load(in.PostPath)
	if err != nil {
		return nil, err
	}

	title, err := doc.Title()
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", in.PostPath, err)
	}

	baseURL := in.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	url := post.CanonicalURL(baseURL, in.PostPath)

	var replacements []post.Replacement
	if in.Site != nil {
		replacements = post.SiteReplacements(in.Site)
	}

	content, err := post.Transform(doc, post.Options{
		URL:          url,
		SiteName:     in.SiteName,
		Replacements: replacements,
	})
	if err != nil {
		return nil, err
	}

	switch in.Format {
	case "", medium.FormatMarkdown:
	case medium.FormatHTML:
		content, err = markdown.ToHTML(content)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported content format %q", in.Format)
	}

	// search for liquid tags and bail if any exist
	if err := post.CheckTemplateTags(content); err != nil {
		return nil, err
	}

	return &Result{
		Title:        title,
		CanonicalURL: url,
		Content:      content,
	}, nil
}

// Run prepares a post and uploads it to Medium as a draft
func Run(ctx context.Context, p Publisher, in Input) (*Result, error) {
	log := zerolog.Ctx(ctx)
	out := in.Out
	if out == nil {
		out = io.Discard
	}

	r, err := Prepare(in)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Uploading draft %q\n", r.Title)
	fmt.Fprintf(out, "Canonical URL: %s\n", r.CanonicalURL)

	if in.DryRun {
		log.Debug().Int("bytes", len(r.Content)).Msg("dry run, not uploading")
		return r, nil
	}

	s, err := p.Authenticate(ctx, in.Token)
	if err != nil {
		return nil, fmt.Errorf("error authenticating with medium: %w", err)
	}

	r.User, err = p.CurrentUser(ctx, s)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("user", r.User.Username).Str("id", r.User.ID).Msg("authenticated")

	format := in.Format
	if format == "" {
		format = medium.FormatMarkdown
	}

	r.Post, err = p.CreatePost(ctx, s, r.User.ID, medium.CreatePostRequest{
		Title:         r.Title,
		ContentFormat: format,
		Content:       r.Content,
		Tags:          Tags,
		CanonicalURL:  r.CanonicalURL,
		PublishStatus: medium.StatusDraft,
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}
