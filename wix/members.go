package wix

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/wixport"
)

// memberJSON is the wire shape of a site member.
type memberJSON struct {
	ID         string `json:"id"`
	LoginEmail string `json:"loginEmail"`
	Profile    struct {
		Nickname string `json:"nickname"`
	} `json:"profile"`
}

func fromMemberJSON(j *memberJSON) *wixport.Member {
	return &wixport.Member{
		ID:       j.ID,
		Email:    j.LoginEmail,
		Nickname: j.Profile.Nickname,
	}
}

// FindMemberByEmail retrieves a member by login email using the members
// query endpoint.
func (c *Client) FindMemberByEmail(ctx context.Context, email string) (*wixport.Member, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "member email required")
	}
	body := struct {
		Query struct {
			Filter struct {
				LoginEmail string `json:"loginEmail"`
			} `json:"filter"`
		} `json:"query"`
	}{}
	body.Query.Filter.LoginEmail = email

	var out struct {
		Members []*memberJSON `json:"members"`
	}
	if err := c.do(ctx, http.MethodPost, "/members/v1/members/query", body, &out); err != nil {
		return nil, err
	}
	if len(out.Members) == 0 {
		return nil, wixport.Errorf(wixport.ENOTFOUND, "no member with email %q", email)
	}
	return fromMemberJSON(out.Members[0]), nil
}

// CreateMember creates a member with the given login email.
func (c *Client) CreateMember(ctx context.Context, email, nickname string) (*wixport.Member, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "member email required")
	}

	member := struct {
		LoginEmail string `json:"loginEmail"`
		Profile    *struct {
			Nickname string `json:"nickname"`
		} `json:"profile,omitempty"`
	}{LoginEmail: email}
	if nickname != "" {
		member.Profile = &struct {
			Nickname string `json:"nickname"`
		}{Nickname: nickname}
	}
	body := struct {
		Member any `json:"member"`
	}{Member: member}

	var out struct {
		Member *memberJSON `json:"member"`
	}
	if err := c.do(ctx, http.MethodPost, "/members/v1/members", body, &out); err != nil {
		return nil, err
	}
	if out.Member == nil {
		return nil, wixport.Errorf(wixport.EINTERNAL, "wix api returned no member")
	}
	return fromMemberJSON(out.Member), nil
}
