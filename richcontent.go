package wixport

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NodeType identifies the kind of a rich content node.
type NodeType string

// Node types understood by the Wix Ricos schema.
const (
	NodeParagraph    NodeType = "PARAGRAPH"
	NodeText         NodeType = "TEXT"
	NodeHeading      NodeType = "HEADING"
	NodeBulletedList NodeType = "BULLETED_LIST"
	NodeOrderedList  NodeType = "ORDERED_LIST"
	NodeListItem     NodeType = "LIST_ITEM"
	NodeBlockquote   NodeType = "BLOCKQUOTE"
	NodeCodeBlock    NodeType = "CODE_BLOCK"
	NodeDivider      NodeType = "DIVIDER"
	NodeImage        NodeType = "IMAGE"
	NodeVideo        NodeType = "VIDEO"
	NodeHTML         NodeType = "HTML"
	NodeTable        NodeType = "TABLE"
	NodeTableRow     NodeType = "TABLE_ROW"
	NodeTableCell    NodeType = "TABLE_CELL"
)

// DecorationType identifies an inline text decoration.
type DecorationType string

// Decoration types applicable to TEXT nodes.
const (
	DecorationBold          DecorationType = "BOLD"
	DecorationItalic        DecorationType = "ITALIC"
	DecorationUnderline     DecorationType = "UNDERLINE"
	DecorationStrikethrough DecorationType = "STRIKETHROUGH"
	DecorationCode          DecorationType = "CODE"
	DecorationLink          DecorationType = "LINK"
)

// WordsPerMinute is the reading speed used for read time estimates.
const WordsPerMinute = 238

// RichContent is a complete Ricos document as accepted by the Wix blog API
// in the richContent field of a draft post.
type RichContent struct {
	Nodes []*Node `json:"nodes"`
}

// Node is a single node in a rich content tree. Exactly one of the typed
// data fields is set, matching Type; TEXT nodes never have children.
type Node struct {
	Type  NodeType `json:"type"`
	ID    string   `json:"id,omitempty"`
	Nodes []*Node  `json:"nodes,omitempty"`

	TextData         *TextData      `json:"textData,omitempty"`
	ParagraphData    *ParagraphData `json:"paragraphData,omitempty"`
	HeadingData      *HeadingData   `json:"headingData,omitempty"`
	BulletedListData *ListData      `json:"bulletedListData,omitempty"`
	OrderedListData  *ListData      `json:"orderedListData,omitempty"`
	CodeBlockData    *CodeBlockData `json:"codeBlockData,omitempty"`
	DividerData      *DividerData   `json:"dividerData,omitempty"`
	ImageData        *ImageData     `json:"imageData,omitempty"`
	VideoData        *VideoData     `json:"videoData,omitempty"`
	HTMLData         *HTMLData      `json:"htmlData,omitempty"`
	TableData        *TableData     `json:"tableData,omitempty"`
	TableCellData    *TableCellData `json:"tableCellData,omitempty"`
}

// TextData is the payload of a TEXT node.
type TextData struct {
	Text        string        `json:"text"`
	Decorations []*Decoration `json:"decorations"`
}

// Decoration marks up the text of the node that carries it. LINK
// decorations carry their target in LinkData; the other types are bare.
type Decoration struct {
	Type     DecorationType `json:"type"`
	LinkData *LinkData      `json:"linkData,omitempty"`
}

// LinkData is the payload of a LINK decoration.
type LinkData struct {
	Link *Link `json:"link,omitempty"`
}

// Link is a hyperlink target.
type Link struct {
	URL    string `json:"url"`
	Target string `json:"target,omitempty"`
}

// TextStyle carries alignment for paragraph-like nodes.
type TextStyle struct {
	TextAlignment string `json:"textAlignment,omitempty"`
}

// ParagraphData is the payload of a PARAGRAPH node.
type ParagraphData struct {
	TextStyle   *TextStyle `json:"textStyle,omitempty"`
	Indentation int        `json:"indentation"`
}

// HeadingData is the payload of a HEADING node. Level is 1-6.
type HeadingData struct {
	Level     int        `json:"level"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

// ListData is the payload of BULLETED_LIST and ORDERED_LIST nodes.
type ListData struct {
	Indentation int `json:"indentation"`
}

// CodeBlockData is the payload of a CODE_BLOCK node.
type CodeBlockData struct {
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

// DividerData is the payload of a DIVIDER node.
type DividerData struct {
	LineStyle string `json:"lineStyle,omitempty"`
	Width     string `json:"width,omitempty"`
	Alignment string `json:"alignment,omitempty"`
}

// ImageData is the payload of an IMAGE node.
type ImageData struct {
	Image   *Image `json:"image,omitempty"`
	AltText string `json:"altText,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Image describes the image source and dimensions. Src.ID references a
// file in the Wix media manager; Src.URL is a fallback for images that
// were not imported.
type Image struct {
	Src    *MediaSrc `json:"src,omitempty"`
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
}

// MediaSrc locates a media item either by media manager ID or by URL.
type MediaSrc struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

// VideoData is the payload of a VIDEO node.
type VideoData struct {
	Video *Video `json:"video,omitempty"`
}

// Video describes an embedded video source.
type Video struct {
	Src *MediaSrc `json:"src,omitempty"`
}

// HTMLData is the payload of an HTML node, used for embeds that have no
// dedicated node type.
type HTMLData struct {
	HTML   string `json:"html"`
	Source string `json:"source,omitempty"`
}

// TableData is the payload of a TABLE node.
type TableData struct {
	Dimensions *TableDimensions `json:"dimensions,omitempty"`
	RowHeader  bool             `json:"rowHeader,omitempty"`
}

// TableDimensions describes relative column widths.
type TableDimensions struct {
	ColsWidthRatio []int `json:"colsWidthRatio,omitempty"`
}

// TableCellData is the payload of a TABLE_CELL node.
type TableCellData struct {
	CellStyle *CellStyle `json:"cellStyle,omitempty"`
}

// CellStyle carries cell alignment.
type CellStyle struct {
	VerticalAlignment string `json:"verticalAlignment,omitempty"`
}

// NewNodeID returns a short unique node identifier.
func NewNodeID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// paragraphLike reports whether t may directly contain TEXT nodes.
func paragraphLike(t NodeType) bool {
	return t == NodeParagraph || t == NodeHeading || t == NodeCodeBlock
}

// Normalize repairs the tree in place so it satisfies the Ricos nesting
// rules: stray TEXT nodes are wrapped in paragraphs, list containers only
// hold LIST_ITEM children, list items wrap their text in a paragraph,
// heading levels are clamped to 1-6, empty containers are dropped and
// every non-TEXT node gets an ID. newID may be nil, in which case
// NewNodeID is used.
func (rc *RichContent) Normalize(newID func() string) {
	if newID == nil {
		newID = NewNodeID
	}
	rc.Nodes = normalizeNodes(rc.Nodes, NodeType(""), newID)
}

func normalizeNodes(nodes []*Node, parent NodeType, newID func() string) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		switch n.Type {
		case NodeText:
			if n.TextData == nil || n.TextData.Text == "" {
				continue
			}
			if n.TextData.Decorations == nil {
				n.TextData.Decorations = []*Decoration{}
			}
			n.Nodes = nil
			if !paragraphLike(parent) {
				n = wrapInParagraph(n, newID)
			}
		case NodeHeading:
			if n.HeadingData == nil {
				n.HeadingData = &HeadingData{Level: 2}
			}
			if n.HeadingData.Level < 1 {
				n.HeadingData.Level = 1
			} else if n.HeadingData.Level > 6 {
				n.HeadingData.Level = 6
			}
		case NodeListItem:
			if parent != NodeBulletedList && parent != NodeOrderedList {
				// A list item outside a list keeps its content only.
				n.Nodes = normalizeNodes(n.Nodes, parent, newID)
				out = append(out, n.Nodes...)
				continue
			}
		case NodeTableRow:
			if parent != NodeTable {
				continue
			}
		case NodeTableCell:
			if parent != NodeTableRow {
				continue
			}
		}

		if n.Type != NodeText {
			if n.ID == "" {
				n.ID = newID()
			}
			n.Nodes = normalizeNodes(n.Nodes, n.Type, newID)
		}

		switch n.Type {
		case NodeBulletedList, NodeOrderedList:
			n.Nodes = wrapListChildren(n.Nodes, newID)
			if len(n.Nodes) == 0 {
				continue
			}
		case NodeParagraph, NodeBlockquote, NodeListItem, NodeTable, NodeTableRow:
			if len(n.Nodes) == 0 {
				continue
			}
		case NodeHeading, NodeCodeBlock:
			if len(n.Nodes) == 0 {
				continue
			}
		}

		out = append(out, n)
	}
	return out
}

// wrapInParagraph hoists a bare text node into a paragraph.
func wrapInParagraph(text *Node, newID func() string) *Node {
	return &Node{
		Type:          NodeParagraph,
		ID:            newID(),
		Nodes:         []*Node{text},
		ParagraphData: &ParagraphData{TextStyle: &TextStyle{TextAlignment: "AUTO"}},
	}
}

// wrapListChildren forces every child of a list container to be a LIST_ITEM
// that in turn wraps block content.
func wrapListChildren(nodes []*Node, newID func() string) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == NodeListItem {
			out = append(out, n)
			continue
		}
		out = append(out, &Node{
			Type:  NodeListItem,
			ID:    newID(),
			Nodes: []*Node{n},
		})
	}
	return out
}

// Validate returns EINVALID if the tree violates a nesting rule that
// Normalize cannot repair.
func (rc *RichContent) Validate() error {
	return validateNodes(rc.Nodes, NodeType(""))
}

func validateNodes(nodes []*Node, parent NodeType) error {
	for _, n := range nodes {
		switch n.Type {
		case NodeText:
			if !paragraphLike(parent) {
				return Errorf(EINVALID, "text node outside paragraph-like container")
			}
			if len(n.Nodes) > 0 {
				return Errorf(EINVALID, "text node must not have children")
			}
			if n.TextData == nil {
				return Errorf(EINVALID, "text node missing textData")
			}
		case NodeHeading:
			if n.HeadingData == nil || n.HeadingData.Level < 1 || n.HeadingData.Level > 6 {
				return Errorf(EINVALID, "heading level must be between 1 and 6")
			}
		case NodeListItem:
			if parent != NodeBulletedList && parent != NodeOrderedList {
				return Errorf(EINVALID, "list item outside list container")
			}
		case NodeTableRow:
			if parent != NodeTable {
				return Errorf(EINVALID, "table row outside table")
			}
		case NodeTableCell:
			if parent != NodeTableRow {
				return Errorf(EINVALID, "table cell outside table row")
			}
		}

		switch parent {
		case NodeBulletedList, NodeOrderedList:
			if n.Type != NodeListItem {
				return Errorf(EINVALID, "list container may only hold list items")
			}
		case NodeTable:
			if n.Type != NodeTableRow {
				return Errorf(EINVALID, "table may only hold table rows")
			}
		case NodeTableRow:
			if n.Type != NodeTableCell {
				return Errorf(EINVALID, "table row may only hold table cells")
			}
		case NodeParagraph, NodeHeading, NodeCodeBlock:
			if n.Type != NodeText {
				return Errorf(EINVALID, "paragraph-like container may only hold text nodes")
			}
		}

		if n.Type != NodeText && n.ID == "" {
			return Errorf(EINVALID, "missing node ID on %s node", n.Type)
		}
		if err := validateNodes(n.Nodes, n.Type); err != nil {
			return err
		}
	}
	return nil
}

// PlainText returns the concatenated text content of the document with
// block nodes separated by newlines.
func (rc *RichContent) PlainText() string {
	var b strings.Builder
	for _, n := range rc.Nodes {
		writePlainText(&b, n)
	}
	return strings.TrimSpace(b.String())
}

func writePlainText(b *strings.Builder, n *Node) {
	if n.Type == NodeText && n.TextData != nil {
		b.WriteString(n.TextData.Text)
		return
	}
	for _, child := range n.Nodes {
		writePlainText(b, child)
	}
	if paragraphLike(n.Type) || n.Type == NodeListItem {
		b.WriteString("\n")
	}
}

// WordCount returns the number of words in the document text.
func (rc *RichContent) WordCount() int {
	return len(strings.Fields(rc.PlainText()))
}

// ReadTime estimates reading time at WordsPerMinute, rounded up to a full
// minute. An empty document reads in zero time.
func (rc *RichContent) ReadTime() time.Duration {
	return ReadTimeForWords(rc.WordCount())
}

// ReadTimeForWords estimates reading time for a word count at
// WordsPerMinute, rounded up to a full minute.
func ReadTimeForWords(words int) time.Duration {
	if words <= 0 {
		return 0
	}
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return time.Duration(minutes) * time.Minute
}

// Truncated returns a document whose JSON encoding fits within maxBytes,
// dropping trailing top-level nodes as needed. The second return value
// reports whether anything was dropped. The receiver is not modified.
func (rc *RichContent) Truncated(maxBytes int) (*RichContent, bool) {
	size := func(nodes []*Node) int {
		b, err := json.Marshal(&RichContent{Nodes: nodes})
		if err != nil {
			return maxBytes + 1
		}
		return len(b)
	}
	if size(rc.Nodes) <= maxBytes {
		return rc, false
	}
	nodes := rc.Nodes
	for len(nodes) > 0 && size(nodes) > maxBytes {
		nodes = nodes[:len(nodes)-1]
	}
	return &RichContent{Nodes: nodes}, true
}
