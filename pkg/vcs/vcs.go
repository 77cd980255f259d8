// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vcs reports whether the scan root lives in a git worktree and which
// files carry uncommitted changes.
package vcs

import (
	"context"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📦 Status is a snapshot of the worktree enclosing a root
type Status struct {
	InRepo bool
	Top    string // worktree root, "" outside a repository
	Head   string // HEAD commit hash, "" before the first commit

	dirty map[string]bool // absolute paths
}

// 🔍 Inspect opens the repository enclosing root, searching parent
// directories. A root outside any repository is not an error.
func Inspect(ctx context.Context, root string) (*Status, error) {
	logger := zerolog.Ctx(ctx)

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", root, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		logger.Debug().Str("root", abs).Msg("not inside a git repository")
		return &Status{}, nil
	}
	if err != nil {
		return nil, errors.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return &Status{}, nil
	}
	if err != nil {
		return nil, errors.Errorf("opening worktree: %w", err)
	}

	st := &Status{
		InRepo: true,
		Top:    wt.Filesystem.Root(),
		dirty:  make(map[string]bool),
	}

	head, err := repo.Head()
	switch {
	case err == nil:
		st.Head = head.Hash().String()
	case errors.Is(err, plumbing.ErrReferenceNotFound):
	default:
		return nil, errors.Errorf("getting HEAD: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, errors.Errorf("reading worktree status: %w", err)
	}
	for path, fs := range status {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		st.dirty[filepath.Join(st.Top, filepath.FromSlash(path))] = true
	}

	logger.Debug().Str("top", st.Top).Str("head", st.Head).Int("dirty", len(st.dirty)).Msg("inspected git worktree")
	return st, nil
}

// Dirty reports whether path has staged, unstaged or untracked changes.
func (s *Status) Dirty(path string) bool {
	if !s.InRepo {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return s.dirty[abs]
}

// DirtyOf filters paths down to the ones with uncommitted changes,
// keeping their order.
func (s *Status) DirtyOf(paths []string) []string {
	var out []string
	for _, p := range paths {
		if s.Dirty(p) {
			out = append(out, p)
		}
	}
	return out
}
