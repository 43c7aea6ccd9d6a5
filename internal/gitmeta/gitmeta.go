// Package gitmeta reads best-effort repository metadata for report headers.
package gitmeta

import (
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/vulnsweep/vulnsweep/internal/types"
)

// Lookup returns repo/commit/branch for the given root. Every failure path
// returns zero values; the scan never depends on git being present.
func Lookup(root string) types.RepoMetadata {
	var meta types.RepoMetadata
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return meta
	}
	if head, err := repo.Head(); err == nil {
		meta.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			meta.Branch = head.Name().Short()
		}
	}
	if remote, err := repo.Remote("origin"); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			meta.Repo = shortenRemote(urls[0])
		}
	}
	return meta
}

// shortenRemote reduces a remote URL to owner/name when possible.
func shortenRemote(url string) string {
	s := strings.TrimSuffix(url, ".git")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "/"); j >= 0 {
			return s[j+1:]
		}
		return s
	}
	// scp-like form: git@host:owner/name
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}
