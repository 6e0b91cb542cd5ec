package gitsource

import (
	"fmt"
	"strings"
)

var hostedGitProviders = []string{"github.com", "gitlab.com", "bitbucket.org"}

// editURLPattern derives an edit-URL template for recognized hosting
// domains. refType is "branch" or "tag". The returned template has a
// trailing "%s" placeholder for the file's site path; it is "" for
// unrecognized hosts.
func editURLPattern(rawURL, refType, refName, startPath string) string {
	host, ownerRepo, ok := parseHostedRepo(rawURL)
	if !ok {
		return ""
	}

	var action string
	switch {
	case host == "bitbucket.org":
		action = "src"
	case refType == "tag":
		action = "blob"
	default:
		action = "edit"
	}

	base := fmt.Sprintf("https://%s/%s/%s/%s", host, ownerRepo, action, refName)
	if sp := strings.Trim(startPath, "/"); sp != "" {
		base += "/" + sp
	}
	return base + "/%s"
}

// parseHostedRepo extracts a (host, owner/repo) pair from an ssh, scp-like,
// or https clone URL pointing at a recognized hosting domain.
func parseHostedRepo(rawURL string) (host, ownerRepo string, ok bool) {
	s := rawURL
	for _, prefix := range []string{"ssh://git@", "https://", "http://", "git@"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.Replace(s, ":", "/", 1)
	s = strings.TrimSuffix(s, ".git")
	s = strings.Trim(s, "/")

	for _, h := range hostedGitProviders {
		if rest, found := strings.CutPrefix(s, h+"/"); found {
			return h, rest, true
		}
	}
	return "", "", false
}
