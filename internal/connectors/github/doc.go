// Package github loads documentation from GitHub repositories.
//
// The loader downloads a repository snapshot as a zip archive from
// codeload.github.com rather than walking the contents API file by
// file. One request fetches the whole tree, which keeps indexing fast
// and avoids API rate limits for public repositories.
//
// # Branch Resolution
//
// The archive endpoint requires a branch name. The loader tries the
// "main" branch first and falls back to "master" on a 404, covering
// the two common defaults without an API call. When an authenticated
// API client is configured, the repository's actual default branch is
// resolved through the Repositories API instead and tried first.
//
// # Document Extraction
//
// Only markdown files (.md and .mdx, matched case-insensitively) are
// extracted from the archive. Each file's YAML front matter block is
// parsed and merged into the document's metadata; a "title" key is
// promoted to the document title. Files with malformed front matter or
// non-UTF-8 content are skipped with a warning rather than failing
// the load.
package github
