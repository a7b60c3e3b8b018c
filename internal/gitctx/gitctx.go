package gitctx

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/dshills/auditmark/internal/region"
)

// ErrNotRepository is returned when a directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
	Remote string
}

// GetRepoMeta collects metadata for the repository containing dir. Head and
// Branch are empty for a repository without commits; Remote is empty when
// there is no "origin".
func GetRepoMeta(dir string) (RepoMeta, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return RepoMeta{}, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return RepoMeta{}, fmt.Errorf("open repo: %w", err)
	}

	var meta RepoMeta
	if wt, err := repo.Worktree(); err == nil {
		meta.Root = wt.Filesystem.Root()
	}

	head, err := repo.Head()
	switch {
	case err == nil:
		meta.Head = head.Hash().String()
		if head.Name().IsBranch() {
			meta.Branch = head.Name().Short()
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// no commits yet
	default:
		return RepoMeta{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	switch {
	case err == nil:
		if urls := remote.Config().URLs; len(urls) > 0 {
			meta.Remote = urls[0]
		}
	case errors.Is(err, git.ErrRemoteNotFound):
	default:
		return RepoMeta{}, fmt.Errorf("read remote: %w", err)
	}
	return meta, nil
}

// NormalizeRemote turns a clone URL into the https URL of the repository's
// web page. SSH forms (git@host:org/repo.git, ssh://git@host/org/repo) are
// rewritten; a trailing .git is dropped.
func NormalizeRemote(remote string) string {
	r := strings.TrimSpace(remote)
	r = strings.TrimSuffix(r, "/")
	r = strings.TrimSuffix(r, ".git")
	switch {
	case strings.HasPrefix(r, "ssh://"):
		r = strings.TrimPrefix(r, "ssh://")
		if at := strings.Index(r, "@"); at >= 0 {
			r = r[at+1:]
		}
		// ssh://host:port/path drops the port.
		if slash := strings.Index(r, "/"); slash >= 0 {
			host := r[:slash]
			if colon := strings.Index(host, ":"); colon >= 0 {
				host = host[:colon]
			}
			r = host + r[slash:]
		}
		return "https://" + r
	case strings.Contains(r, "@") && strings.Contains(r, ":") && !strings.Contains(r, "://"):
		r = r[strings.Index(r, "@")+1:]
		return "https://" + strings.Replace(r, ":", "/", 1)
	case strings.HasPrefix(r, "http://"):
		return "https://" + strings.TrimPrefix(r, "http://")
	}
	return r
}

// Permalink builds a link to lines of relPath at commit sha. Lines are
// 0-indexed on input and 1-indexed in the link; a single line omits the
// range suffix.
func Permalink(remote, sha, relPath string, lines region.LineRegion) string {
	base := NormalizeRemote(remote)
	p := path.Clean(filepath.ToSlash(relPath))
	link := fmt.Sprintf("%s/blob/%s/%s#L%d", base, sha, strings.TrimPrefix(p, "/"), lines.StartLine+1)
	if lines.EndLine > lines.StartLine {
		link += fmt.Sprintf("-L%d", lines.EndLine+1)
	}
	return link
}
