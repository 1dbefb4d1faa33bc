// post-to-medium uploads a Jekyll post to Medium as a draft
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/kr/pretty"
	"github.com/latenightswift/post-publisher/medium"
	"github.com/latenightswift/post-publisher/post"
	"github.com/latenightswift/post-publisher/publish"
	"github.com/latenightswift/post-publisher/site"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type args struct {
	File    string `arg:"-f,--file,required" help:"path of markdown post file to upload"`
	Config  string `arg:"-c,--config" default:"../../_config.yml" help:"path of Jekyll _config.yml file"`
	Token   string `arg:"-t,--token,env:MEDIUM_ACCESS_TOKEN" help:"Medium access token, read from MEDIUM_ACCESS_TOKEN if not given"`
	Format  string `default:"markdown" help:"content format to upload: markdown or html"`
	BaseURL string `arg:"--base-url" default:"https://www.latenightswift.com" help:"site that the canonical url points to"`
	DryRun  bool   `arg:"--dry-run" help:"print the transformed post instead of uploading it"`
	Open    bool   `help:"open the new draft in a browser"`
	Verbose bool   `arg:"-v,--verbose" help:"print debug logs"`
}

func (args) Description() string {
	return "Uploads a Jekyll markdown post to Medium as a draft, with a canonical url pointing back to the blog"
}

// readToken prompts for an access token when stdin is a terminal
func readToken() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", errors.New("no Medium access token: use --token or set MEDIUM_ACCESS_TOKEN")
	}

	fmt.Print("Enter Medium access token: ")
	buf, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("error reading access token: %w", err)
	}
	return strings.TrimSpace(string(buf)), nil
}

func Main() error {
	// variables in .env never override the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}

	var args args
	arg.MustParse(&args)

	level := zerolog.InfoLevel
	if args.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := site.Load(args.Config)
	if err != nil {
		return err
	}
	logger.Debug().Str("config", args.Config).Msg("loaded site config")

	if args.Token == "" && !args.DryRun {
		args.Token, err = readToken()
		if err != nil {
			return err
		}
	}

	client := medium.New(medium.WithLogger(logger))
	r, err := publish.Run(ctx, client, publish.Input{
		PostPath: args.File,
		Site:     cfg,
		Token:    args.Token,
		BaseURL:  args.BaseURL,
		Format:   args.Format,
		DryRun:   args.DryRun,
		Out:      os.Stdout,
	})
	if err != nil {
		return err
	}

	if args.DryRun {
		fmt.Println(r.Content)
		return nil
	}

	fmt.Println("Post successful:")
	pretty.Println(r.Post)

	if args.Open && r.Post.URL != "" {
		if err := browser.OpenURL(r.Post.URL); err != nil {
			fmt.Println("Go to the following link in your browser:\n" + r.Post.URL)
		}
	}
	return nil
}

func main() {
	err := Main()
	var tagErr *post.TemplateTagError
	if errors.As(err, &tagErr) {
		fmt.Println("ERROR: " + tagErr.Error())
		os.Exit(1)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
