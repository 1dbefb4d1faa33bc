// a utility for checking that a Medium access token works

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/kr/pretty"
	"github.com/latenightswift/post-publisher/medium"
)

func main() {
	ctx := context.Background()

	var args struct {
		Token   string `arg:"-t,--token,env:MEDIUM_ACCESS_TOKEN,required"`
		BaseURL string `arg:"--base-url"`
	}
	args.BaseURL = medium.DefaultBaseURL
	arg.MustParse(&args)

	client := medium.New(medium.WithBaseURL(args.BaseURL))
	s, err := client.Authenticate(ctx, args.Token)
	if err != nil {
		fmt.Printf("error authenticating: %v\n", err)
		os.Exit(1)
	}

	me, err := client.CurrentUser(ctx, s)
	if err != nil {
		fmt.Printf("error fetching current user: %v\n", err)
		os.Exit(1)
	}

	pretty.Println(me)
}
