package ricos

import (
	"github.com/fwojciec/wixport"
)

// Node constructors for the subset of the Ricos grammar the converter
// emits. IDs are left empty here; normalization assigns them.

func textNode(text string, decorations []*wixport.Decoration) *wixport.Node {
	return &wixport.Node{
		Type: wixport.NodeText,
		TextData: &wixport.TextData{
			Text:        text,
			Decorations: copyDecorations(decorations),
		},
	}
}

func paragraph(children []*wixport.Node) *wixport.Node {
	return &wixport.Node{
		Type:  wixport.NodeParagraph,
		Nodes: children,
		ParagraphData: &wixport.ParagraphData{
			TextStyle: &wixport.TextStyle{TextAlignment: "AUTO"},
		},
	}
}

func heading(level int, children []*wixport.Node) *wixport.Node {
	return &wixport.Node{
		Type:  wixport.NodeHeading,
		Nodes: children,
		HeadingData: &wixport.HeadingData{
			Level:     level,
			TextStyle: &wixport.TextStyle{TextAlignment: "AUTO"},
		},
	}
}

func listContainer(ordered bool, items []*wixport.Node) *wixport.Node {
	n := &wixport.Node{Nodes: items}
	if ordered {
		n.Type = wixport.NodeOrderedList
		n.OrderedListData = &wixport.ListData{}
	} else {
		n.Type = wixport.NodeBulletedList
		n.BulletedListData = &wixport.ListData{}
	}
	return n
}

func listItem(children []*wixport.Node) *wixport.Node {
	return &wixport.Node{Type: wixport.NodeListItem, Nodes: children}
}

func blockquote(children []*wixport.Node) *wixport.Node {
	return &wixport.Node{Type: wixport.NodeBlockquote, Nodes: children}
}

func divider() *wixport.Node {
	return &wixport.Node{
		Type: wixport.NodeDivider,
		DividerData: &wixport.DividerData{
			LineStyle: "SINGLE",
			Width:     "LARGE",
			Alignment: "CENTER",
		},
	}
}

func codeBlock(text string) *wixport.Node {
	return &wixport.Node{
		Type:          wixport.NodeCodeBlock,
		Nodes:         []*wixport.Node{textNode(text, nil)},
		CodeBlockData: &wixport.CodeBlockData{TextStyle: &wixport.TextStyle{TextAlignment: "AUTO"}},
	}
}

func imageNode(src *wixport.MediaSrc, width, height int, alt, caption string) *wixport.Node {
	return &wixport.Node{
		Type: wixport.NodeImage,
		ImageData: &wixport.ImageData{
			Image:   &wixport.Image{Src: src, Width: width, Height: height},
			AltText: alt,
			Caption: caption,
		},
	}
}

func videoNode(url string) *wixport.Node {
	return &wixport.Node{
		Type: wixport.NodeVideo,
		VideoData: &wixport.VideoData{
			Video: &wixport.Video{Src: &wixport.MediaSrc{URL: url}},
		},
	}
}

func htmlNode(markup string) *wixport.Node {
	return &wixport.Node{
		Type:     wixport.NodeHTML,
		HTMLData: &wixport.HTMLData{HTML: markup, Source: "HTML"},
	}
}

func tableNode(rows []*wixport.Node, cols int, rowHeader bool) *wixport.Node {
	ratio := make([]int, cols)
	for i := range ratio {
		ratio[i] = 1
	}
	return &wixport.Node{
		Type:  wixport.NodeTable,
		Nodes: rows,
		TableData: &wixport.TableData{
			Dimensions: &wixport.TableDimensions{ColsWidthRatio: ratio},
			RowHeader:  rowHeader,
		},
	}
}

func tableRow(cells []*wixport.Node) *wixport.Node {
	return &wixport.Node{Type: wixport.NodeTableRow, Nodes: cells}
}

func tableCell(children []*wixport.Node) *wixport.Node {
	return &wixport.Node{
		Type:          wixport.NodeTableCell,
		Nodes:         children,
		TableCellData: &wixport.TableCellData{CellStyle: &wixport.CellStyle{VerticalAlignment: "TOP"}},
	}
}

func copyDecorations(decorations []*wixport.Decoration) []*wixport.Decoration {
	out := make([]*wixport.Decoration, len(decorations))
	copy(out, decorations)
	return out
}
