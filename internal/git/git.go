// Package git provides the repository introspection clog needs: origin
// remote detection for deriving the target repository URL, and branch
// lookup. It uses the go-git library, never the git CLI.
package git

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
)

// openRepo opens the repository containing path, traversing up to find the
// .git directory. Empty path means the current working directory.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository reports whether path is inside a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// CurrentBranch returns the checked-out branch name, or "" in detached HEAD
// state.
func CurrentBranch(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// OriginURL returns the origin remote normalized to an https GitHub URL,
// e.g. git@github.com:owner/repo.git becomes https://github.com/owner/repo.
func OriginURL(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("getting origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	return NormalizeRemoteURL(urls[0])
}

var sshRemotePattern = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([\w.\-]+)/([\w.\-]+?)(?:\.git)?/?$`)
var httpsRemotePattern = regexp.MustCompile(`^https://github\.com/([\w.\-]+)/([\w.\-]+?)(?:\.git)?/?$`)

// NormalizeRemoteURL converts the common GitHub remote forms to the https
// repository URL.
func NormalizeRemoteURL(remote string) (string, error) {
	remote = strings.TrimSpace(remote)
	for _, re := range []*regexp.Regexp{sshRemotePattern, httpsRemotePattern} {
		if m := re.FindStringSubmatch(remote); m != nil {
			return "https://github.com/" + m[1] + "/" + m[2], nil
		}
	}
	return "", fmt.Errorf("remote %q is not a GitHub URL", remote)
}
