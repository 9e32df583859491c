package mock

import "github.com/fwojciec/wixport"

var _ wixport.PostSource = (*PostSource)(nil)

// PostSource is a mock implementation of wixport.PostSource.
type PostSource struct {
	PostsFn func() ([]*wixport.Post, error)
}

func (s *PostSource) Posts() ([]*wixport.Post, error) {
	return s.PostsFn()
}
