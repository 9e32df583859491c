package main

import (
	"fmt"

	"github.com/fwojciec/wixport"
)

// pageSize is how many posts FindPosts fetches per request.
const pageSize = 100

// Run executes the posts command.
func (c *PostsCmd) Run(deps *Dependencies) error {
	offset := 0
	printed := 0
	for {
		limit := pageSize
		if c.Limit > 0 && c.Limit-printed < limit {
			limit = c.Limit - printed
		}
		if limit <= 0 {
			break
		}

		page, err := deps.Blog.FindPosts(deps.Ctx, wixport.PostListFilter{Offset: offset, Limit: limit})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
			return err
		}

		for _, post := range page {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", post.ID, post.Slug, post.URL)
		}
		printed += len(page)

		if len(page) < limit {
			break
		}
		offset += len(page)
	}

	if printed == 0 {
		fmt.Fprintln(deps.Stdout, "No published posts found.")
	}
	return nil
}
