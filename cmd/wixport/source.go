package main

import (
	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/wordpress"
)

// openSource builds a post source from the export flags. When both exports
// are given the XML wins on duplicate slugs, since WXR carries the full post
// body while the CSV export typically only adds posts and SEO columns.
func openSource(xmlPath, csvPath string) (wixport.PostSource, error) {
	switch {
	case xmlPath != "" && csvPath != "":
		xml, err := wordpress.Open(xmlPath)
		if err != nil {
			return nil, err
		}
		csv, err := wordpress.Open(csvPath)
		if err != nil {
			return nil, err
		}
		return &mergedSource{primary: xml, secondary: csv}, nil
	case xmlPath != "":
		return wordpress.Open(xmlPath)
	case csvPath != "":
		return wordpress.Open(csvPath)
	default:
		return nil, wixport.Errorf(wixport.EINVALID, "an export file is required: pass --xml or --csv")
	}
}

// mergedSource reads two exports and deduplicates posts by slug.
type mergedSource struct {
	primary   wixport.PostSource
	secondary wixport.PostSource
}

func (s *mergedSource) Posts() ([]*wixport.Post, error) {
	primary, err := s.primary.Posts()
	if err != nil {
		return nil, err
	}
	secondary, err := s.secondary.Posts()
	if err != nil {
		return nil, err
	}
	return wixport.MergePosts(primary, secondary), nil
}

// errSource defers an open error to the first read, which lets pre-flight
// checks report it as a result row instead of aborting.
type errSource struct{ err error }

func (s errSource) Posts() ([]*wixport.Post, error) { return nil, s.err }
