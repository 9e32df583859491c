package wixport_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/wixport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("node-%d", n)
	}
}

func textNode(s string) *wixport.Node {
	return &wixport.Node{
		Type:     wixport.NodeText,
		TextData: &wixport.TextData{Text: s},
	}
}

func TestRichContent_Normalize_WrapsStrayText(t *testing.T) {
	t.Parallel()

	rc := &wixport.RichContent{Nodes: []*wixport.Node{textNode("hello")}}
	rc.Normalize(sequentialIDs())

	require.Len(t, rc.Nodes, 1)
	assert.Equal(t, wixport.NodeParagraph, rc.Nodes[0].Type)
	require.Len(t, rc.Nodes[0].Nodes, 1)
	assert.Equal(t, wixport.NodeText, rc.Nodes[0].Nodes[0].Type)
	assert.Equal(t, "hello", rc.Nodes[0].Nodes[0].TextData.Text)
	require.NoError(t, rc.Validate())
}

func TestRichContent_Normalize_ClampsHeadingLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level int
		want  int
	}{
		{name: "below range", level: 0, want: 1},
		{name: "above range", level: 9, want: 6},
		{name: "in range", level: 3, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc := &wixport.RichContent{Nodes: []*wixport.Node{{
				Type:        wixport.NodeHeading,
				HeadingData: &wixport.HeadingData{Level: tt.level},
				Nodes:       []*wixport.Node{textNode("title")},
			}}}
			rc.Normalize(sequentialIDs())

			require.Len(t, rc.Nodes, 1)
			assert.Equal(t, tt.want, rc.Nodes[0].HeadingData.Level)
		})
	}
}

func TestRichContent_Normalize_WrapsListChildren(t *testing.T) {
	t.Parallel()

	rc := &wixport.RichContent{Nodes: []*wixport.Node{{
		Type:  wixport.NodeBulletedList,
		Nodes: []*wixport.Node{textNode("first"), textNode("second")},
	}}}
	rc.Normalize(sequentialIDs())

	require.Len(t, rc.Nodes, 1)
	list := rc.Nodes[0]
	require.Len(t, list.Nodes, 2)
	for _, item := range list.Nodes {
		assert.Equal(t, wixport.NodeListItem, item.Type)
		require.Len(t, item.Nodes, 1)
		assert.Equal(t, wixport.NodeParagraph, item.Nodes[0].Type)
	}
	require.NoError(t, rc.Validate())
}

func TestRichContent_Normalize_DropsEmptyContainers(t *testing.T) {
	t.Parallel()

	rc := &wixport.RichContent{Nodes: []*wixport.Node{
		{Type: wixport.NodeParagraph},
		{Type: wixport.NodeBulletedList},
		{Type: wixport.NodeDivider},
	}}
	rc.Normalize(sequentialIDs())

	require.Len(t, rc.Nodes, 1)
	assert.Equal(t, wixport.NodeDivider, rc.Nodes[0].Type)
}

func TestRichContent_Normalize_AssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	rc := &wixport.RichContent{Nodes: []*wixport.Node{
		{Type: wixport.NodeParagraph, Nodes: []*wixport.Node{textNode("a")}},
		{Type: wixport.NodeParagraph, Nodes: []*wixport.Node{textNode("b")}},
	}}
	rc.Normalize(nil)

	seen := map[string]bool{}
	for _, n := range rc.Nodes {
		require.NotEmpty(t, n.ID)
		assert.False(t, seen[n.ID], "duplicate node ID %q", n.ID)
		seen[n.ID] = true
	}
}

func TestRichContent_Validate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rc   *wixport.RichContent
	}{
		{
			name: "text at root",
			rc:   &wixport.RichContent{Nodes: []*wixport.Node{textNode("stray")}},
		},
		{
			name: "list item outside list",
			rc: &wixport.RichContent{Nodes: []*wixport.Node{
				{Type: wixport.NodeListItem, ID: "a"},
			}},
		},
		{
			name: "table row outside table",
			rc: &wixport.RichContent{Nodes: []*wixport.Node{
				{Type: wixport.NodeTableRow, ID: "a"},
			}},
		},
		{
			name: "heading level out of range",
			rc: &wixport.RichContent{Nodes: []*wixport.Node{
				{Type: wixport.NodeHeading, ID: "a", HeadingData: &wixport.HeadingData{Level: 7}},
			}},
		},
		{
			name: "non-text child of paragraph",
			rc: &wixport.RichContent{Nodes: []*wixport.Node{
				{Type: wixport.NodeParagraph, ID: "a", Nodes: []*wixport.Node{
					{Type: wixport.NodeImage, ID: "b", ImageData: &wixport.ImageData{}},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.rc.Validate()
			require.Error(t, err)
			assert.Equal(t, wixport.EINVALID, wixport.ErrorCode(err))
		})
	}
}

func TestRichContent_PlainText(t *testing.T) {
	t.Parallel()

	rc := &wixport.RichContent{Nodes: []*wixport.Node{
		{Type: wixport.NodeHeading, ID: "a", HeadingData: &wixport.HeadingData{Level: 1},
			Nodes: []*wixport.Node{textNode("Title")}},
		{Type: wixport.NodeParagraph, ID: "b",
			Nodes: []*wixport.Node{textNode("Hello "), textNode("world.")}},
	}}

	assert.Equal(t, "Title\nHello world.", rc.PlainText())
}

func TestRichContent_ReadTime(t *testing.T) {
	t.Parallel()

	words := strings.Repeat("word ", 300)
	rc := &wixport.RichContent{Nodes: []*wixport.Node{
		{Type: wixport.NodeParagraph, ID: "a", Nodes: []*wixport.Node{textNode(words)}},
	}}

	assert.Equal(t, 2*time.Minute, rc.ReadTime())
	assert.Equal(t, 300, rc.WordCount())

	empty := &wixport.RichContent{}
	assert.Equal(t, time.Duration(0), empty.ReadTime())
}

func TestRichContent_Truncated(t *testing.T) {
	t.Parallel()

	rc := &wixport.RichContent{}
	for i := 0; i < 50; i++ {
		rc.Nodes = append(rc.Nodes, &wixport.Node{
			Type:  wixport.NodeParagraph,
			ID:    fmt.Sprintf("p-%d", i),
			Nodes: []*wixport.Node{textNode(strings.Repeat("x", 100))},
		})
	}

	full, dropped := rc.Truncated(1 << 20)
	assert.False(t, dropped)
	assert.Len(t, full.Nodes, 50)

	small, dropped := rc.Truncated(2000)
	assert.True(t, dropped)
	assert.NotEmpty(t, small.Nodes)
	assert.Less(t, len(small.Nodes), 50)
	assert.Len(t, rc.Nodes, 50, "receiver must not be modified")
}
