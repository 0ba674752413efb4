// Package store defines the article-store abstraction over the remote
// latest_news table.
//
// The ArticleStore interface exposes exactly the four operations the
// maintenance jobs use: the two candidate selectors and the two
// single-row updates. Rows arrive from the store as loosely typed JSON;
// implementations decode them into the typed candidate records from
// package core at this boundary, so workers never see raw rows.
//
// The supabase subpackage implements the interface against a PostgREST
// endpoint; the mock subpackage provides an in-memory test double.
package store
