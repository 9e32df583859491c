// Package wixport migrates WordPress content into a Wix site. It parses
// WordPress export dumps (WXR XML and CSV), converts post bodies from
// HTML into the Wix Ricos rich content node tree, and pushes the result
// to the Wix REST API as draft or published blog posts.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., sqlite/, wix/, ricos/).
package wixport
