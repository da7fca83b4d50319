package repo_test

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/keshon/snap/internal/errs"
	"github.com/keshon/snap/internal/fs"
	"github.com/keshon/snap/internal/repo"
	"github.com/keshon/snap/internal/repo/meta"
	"github.com/keshon/snap/internal/repo/store/object"
)

const wt = "/wt"

func newTestRepo(t *testing.T) (*repo.Repository, *fs.MemoryFS) {
	t.Helper()
	mem := fs.NewMemoryFS()
	r, err := repo.Init(wt, repo.WithFS(mem))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r, mem
}

func writeFile(t *testing.T, mem *fs.MemoryFS, rel, content string) {
	t.Helper()
	p := path.Join(wt, rel)
	if err := mem.MkdirAll(path.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := mem.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mustAdd(t *testing.T, r *repo.Repository, paths ...string) {
	t.Helper()
	if _, err := r.Add(paths...); err != nil {
		t.Fatalf("Add(%v): %v", paths, err)
	}
}

func mustCommit(t *testing.T, r *repo.Repository, msg string) string {
	t.Helper()
	d, err := r.Commit(msg)
	if err != nil {
		t.Fatalf("Commit(%q): %v", msg, err)
	}
	return d
}

func headOf(t *testing.T, r *repo.Repository, name string) string {
	t.Helper()
	b, err := r.Meta.GetBranch(name)
	if err != nil {
		t.Fatal(err)
	}
	return b.Head
}

func TestInitAndOpen(t *testing.T) {
	r, mem := newTestRepo(t)

	if _, err := repo.Init(wt, repo.WithFS(mem)); !errors.Is(err, errs.ErrRepoExists) {
		t.Errorf("second Init: expected ErrRepoExists, got %v", err)
	}

	opened, err := repo.Open(wt, repo.WithFS(mem))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened.Settings.DefaultBranch != "main" {
		t.Errorf("DefaultBranch = %q", opened.Settings.DefaultBranch)
	}

	name, _ := r.CurrentBranch()
	if name != "main" {
		t.Errorf("current branch = %q, want main", name)
	}
	if !mem.Exists(filepath.Join(wt, ".snap", "index.json")) {
		t.Error("index not created")
	}

	if _, err := repo.Open("/elsewhere", repo.WithFS(mem)); !errors.Is(err, errs.ErrNoRepo) {
		t.Errorf("Open on empty dir: expected ErrNoRepo, got %v", err)
	}
}

func TestInitCustomDefaultBranch(t *testing.T) {
	mem := fs.NewMemoryFS()
	r, err := repo.Init(wt, repo.WithFS(mem), repo.WithDefaultBranch("trunk"))
	if err != nil {
		t.Fatal(err)
	}
	name, _ := r.CurrentBranch()
	if name != "trunk" {
		t.Errorf("current branch = %q, want trunk", name)
	}
}

func TestIdempotentStaging(t *testing.T) {
	r, mem := newTestRepo(t)
	writeFile(t, mem, "a.txt", "hello")

	mustAdd(t, r, "a.txt")
	idx1, _ := r.Store.Files.LoadIndex()
	mustAdd(t, r, "a.txt")
	idx2, _ := r.Store.Files.LoadIndex()

	if len(idx2) != 1 {
		t.Fatalf("index has %d entries, want 1", len(idx2))
	}
	if idx1["a.txt"].Digest != idx2["a.txt"].Digest {
		t.Error("digest changed between identical adds")
	}
}

func TestCommitSnapshotCompleteness(t *testing.T) {
	r, mem := newTestRepo(t)
	writeFile(t, mem, "f1.txt", "one")
	writeFile(t, mem, "dir/f2.txt", "two")

	res, err := r.Add("f1.txt", "dir/f2.txt")
	if err != nil {
		t.Fatal(err)
	}
	staged := map[string]string{res[0].Path: res[0].Digest, res[1].Path: res[1].Digest}

	d := mustCommit(t, r, "m")

	c, err := r.ShowCommit(d)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c.Changes, staged) {
		t.Errorf("changes = %v, want %v", c.Changes, staged)
	}
	if c.Parent.Kind() != meta.NoParent {
		t.Errorf("first commit has parent %v", c.Parent.Digests())
	}

	idx, _ := r.Store.Files.LoadIndex()
	if len(idx) != 0 {
		t.Errorf("index not cleared: %v", idx)
	}

	if headOf(t, r, "main") != d {
		t.Error("branch head not advanced")
	}
}

func TestCommitChainsParentsAndAllowsEmpty(t *testing.T) {
	r, _ := newTestRepo(t)

	c1 := mustCommit(t, r, "empty 1")
	c2 := mustCommit(t, r, "empty 2")

	got, _ := r.ShowCommit(c2)
	if got.Parent.Kind() != meta.SingleParent || got.Parent.Digests()[0] != c1 {
		t.Errorf("parent = %v, want %s", got.Parent.Digests(), c1)
	}
	if len(got.Changes) != 0 {
		t.Errorf("empty commit has changes %v", got.Changes)
	}
}

func TestLogOrder(t *testing.T) {
	r, mem := newTestRepo(t)

	var want []string
	for _, msg := range []string{"c1", "c2", "c3"} {
		writeFile(t, mem, "a.txt", msg)
		mustAdd(t, r, "a.txt")
		want = append([]string{mustCommit(t, r, msg)}, want...)
	}

	entries, err := r.Log()
	if err != nil {
		t.Fatal(err)
	}
	var got, msgs []string
	for _, e := range entries {
		got = append(got, e.Digest)
		msgs = append(msgs, e.Message)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("log digests = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(msgs, []string{"c3", "c2", "c1"}) {
		t.Errorf("log messages = %v", msgs)
	}
}

func TestLogEmptyBranch(t *testing.T) {
	r, _ := newTestRepo(t)
	entries, err := r.Log()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestDiffSnapshots(t *testing.T) {
	a := map[string]string{"same": "1", "gone": "2", "changed": "3"}
	b := map[string]string{"same": "1", "changed": "4", "new": "5"}

	d := repo.DiffSnapshots(a, b)
	if !reflect.DeepEqual(d.Added, []string{"new"}) ||
		!reflect.DeepEqual(d.Deleted, []string{"gone"}) ||
		!reflect.DeepEqual(d.Modified, []string{"changed"}) {
		t.Errorf("diff = %+v", d)
	}

	if !repo.DiffSnapshots(a, a).Empty() {
		t.Error("diff of identical snapshots should be empty")
	}
}

func TestDiffSymmetry(t *testing.T) {
	r, mem := newTestRepo(t)

	writeFile(t, mem, "a", "1")
	writeFile(t, mem, "b", "2")
	writeFile(t, mem, "c", "3")
	mustAdd(t, r, "a", "b", "c")
	cA := mustCommit(t, r, "A")

	writeFile(t, mem, "b", "changed")
	writeFile(t, mem, "d", "4")
	mustAdd(t, r, "a", "b", "d")
	cB := mustCommit(t, r, "B")

	ab, err := r.Diff(cA, cB)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := r.Diff(cB, cA)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(ab.Deleted, ba.Added) || !reflect.DeepEqual(ab.Added, ba.Deleted) {
		t.Errorf("asymmetric diff: ab=%+v ba=%+v", ab, ba)
	}
	if !reflect.DeepEqual(ab.Added, []string{"d"}) ||
		!reflect.DeepEqual(ab.Deleted, []string{"c"}) ||
		!reflect.DeepEqual(ab.Modified, []string{"b"}) {
		t.Errorf("diff A->B = %+v", ab)
	}
	if !reflect.DeepEqual(ab.Modified, ba.Modified) {
		t.Error("modified set should be the same both ways")
	}
}

func TestDiffMissingCommit(t *testing.T) {
	r, _ := newTestRepo(t)
	c := mustCommit(t, r, "x")

	if _, err := r.Diff(c, "0000000000000000000000000000000000000000"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// setupDiverged leaves main with {a: mainContent} and feature with
// {b or a: featureContent}, both forked from the same empty root.
func setupDiverged(t *testing.T, featurePath, featureContent string) (*repo.Repository, *fs.MemoryFS) {
	t.Helper()
	r, mem := newTestRepo(t)
	mustCommit(t, r, "root")

	if _, err := r.Branch("feature"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, mem, featurePath, featureContent)
	mustAdd(t, r, featurePath)
	mustCommit(t, r, "feature work")

	if err := r.Checkout("main"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, mem, "a", "main content")
	mustAdd(t, r, "a")
	mustCommit(t, r, "main work")
	return r, mem
}

func TestMergeNoOverlap(t *testing.T) {
	r, _ := setupDiverged(t, "b", "feature content")

	mainHead := headOf(t, r, "main")
	featHead := headOf(t, r, "feature")
	mainCommit, _ := r.ShowCommit(mainHead)
	featCommit, _ := r.ShowCommit(featHead)

	d, err := r.Merge("feature")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	c, err := r.ShowCommit(d)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"a": mainCommit.Changes["a"], "b": featCommit.Changes["b"]}
	if !reflect.DeepEqual(c.Changes, want) {
		t.Errorf("merged changes = %v, want %v", c.Changes, want)
	}
	if c.Parent.Kind() != meta.MergeParents ||
		!reflect.DeepEqual(c.Parent.Digests(), []string{mainHead, featHead}) {
		t.Errorf("parents = %v", c.Parent.Digests())
	}

	if headOf(t, r, "main") != d {
		t.Error("main head not advanced to merge commit")
	}
	if headOf(t, r, "feature") != featHead {
		t.Error("feature head changed by merge")
	}

	log, _ := r.Log()
	if log[0].Digest != d || len(log[0].Parents) != 2 {
		t.Errorf("merge commit not at top of log: %+v", log[0])
	}
}

func TestMergeConflictAborts(t *testing.T) {
	r, mem := setupDiverged(t, "a", "feature content")

	// second conflicting path on main
	writeFile(t, mem, "z", "main z")
	mustAdd(t, r, "a", "z")
	mustCommit(t, r, "main z")
	if err := r.Checkout("feature"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, mem, "z", "feature z")
	writeFile(t, mem, "a", "feature content")
	mustAdd(t, r, "a", "z")
	mustCommit(t, r, "feature z")
	if err := r.Checkout("main"); err != nil {
		t.Fatal(err)
	}

	mainHead := headOf(t, r, "main")
	before, _ := r.Log()

	_, err := r.Merge("feature")
	if !errors.Is(err, errs.ErrMergeConflict) {
		t.Fatalf("expected merge conflict, got %v", err)
	}
	var mce *errs.MergeConflictError
	if !errors.As(err, &mce) {
		t.Fatalf("expected *MergeConflictError, got %T", err)
	}
	if !reflect.DeepEqual(mce.Paths, []string{"a", "z"}) {
		t.Errorf("conflict paths = %v, want [a z]", mce.Paths)
	}

	if headOf(t, r, "main") != mainHead {
		t.Error("main head changed after aborted merge")
	}
	after, _ := r.Log()
	if len(after) != len(before) {
		t.Error("history changed after aborted merge")
	}
}

func TestMergeErrors(t *testing.T) {
	r, _ := newTestRepo(t)

	if _, err := r.Merge("main"); !errors.Is(err, errs.ErrSelfMerge) {
		t.Errorf("self merge: got %v", err)
	}
	if _, err := r.Merge("ghost"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("unknown branch: got %v", err)
	}

	if _, err := r.Branch("empty"); err != nil {
		t.Fatal(err)
	}
	if err := r.Checkout("main"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Merge("empty"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("branches without commits: got %v", err)
	}
}

func TestMergeSnapshotsDoesNotTouchInput(t *testing.T) {
	ours := map[string]string{"a": "1"}
	theirs := map[string]string{"a": "1", "b": "2"}

	merged, conflicts := repo.MergeSnapshots(ours, theirs)
	if len(conflicts) != 0 {
		t.Errorf("unexpected conflicts %v", conflicts)
	}
	if len(ours) != 1 {
		t.Error("ours was modified")
	}
	if !reflect.DeepEqual(merged, theirs) {
		t.Errorf("merged = %v", merged)
	}
}

func TestCheckoutGhost(t *testing.T) {
	r, _ := newTestRepo(t)

	err := r.Checkout("ghost")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	name, _ := r.CurrentBranch()
	if name != "main" {
		t.Errorf("HEAD moved to %q", name)
	}
}

func TestCommitOnUnrecordedHead(t *testing.T) {
	r, mem := newTestRepo(t)
	writeFile(t, mem, "a", "alpha")
	mustAdd(t, r, "a")

	if _, err := r.Meta.SetHeadRef("ghost"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Commit("x"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if r.Meta.BranchExists("ghost") {
		t.Error("commit created a branch record")
	}
}

func TestBranchPolicy(t *testing.T) {
	r, mem := newTestRepo(t)
	writeFile(t, mem, "a", "1")
	mustAdd(t, r, "a")
	c1 := mustCommit(t, r, "c1")

	created, err := r.Branch("feature")
	if err != nil || !created {
		t.Fatalf("Branch = %v, %v", created, err)
	}
	name, _ := r.CurrentBranch()
	if name != "feature" {
		t.Errorf("HEAD = %q, want feature", name)
	}
	b, _ := r.Meta.GetBranch("feature")
	if b.Head != c1 || !reflect.DeepEqual(b.History, []string{c1}) {
		t.Errorf("new branch = %+v", b)
	}

	// Commits on feature leave main alone.
	c2 := mustCommit(t, r, "c2")
	if headOf(t, r, "main") != c1 {
		t.Error("main moved")
	}

	// Existing branch: only HEAD switches.
	created, err = r.Branch("main")
	if err != nil || created {
		t.Fatalf("Branch(main) = %v, %v", created, err)
	}
	if headOf(t, r, "feature") != c2 {
		t.Error("feature record rewritten")
	}

	if _, err := r.Branch("bad/name"); !errors.Is(err, errs.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}

	list, err := r.ListBranches()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "feature" || list[1].Name != "main" || !list[1].Current {
		t.Errorf("ListBranches = %+v", list)
	}
}

func TestAddDirectoryAndIgnore(t *testing.T) {
	r, mem := newTestRepo(t)
	writeFile(t, mem, ".snapignore", "*.log\nbuild/\n")
	writeFile(t, mem, "src/main.go", "package main")
	writeFile(t, mem, "src/debug.log", "noise")
	writeFile(t, mem, "build/out.bin", "bin")
	writeFile(t, mem, "README", "hi")

	res, err := r.Add(".")
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, s := range res {
		paths = append(paths, s.Path)
	}
	want := []string{".snapignore", "README", "src/main.go"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("added %v, want %v", paths, want)
	}

	res, err = r.Add("src/debug.log")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || !res[0].Ignored {
		t.Errorf("expected ignored result, got %+v", res)
	}
	idx, _ := r.Store.Files.LoadIndex()
	if _, ok := idx["src/debug.log"]; ok {
		t.Error("ignored file was staged")
	}
}

func TestAddInsideIgnoredDirectory(t *testing.T) {
	r, mem := newTestRepo(t)
	writeFile(t, mem, ".snapignore", "build\n")
	writeFile(t, mem, "build/x.o", "object code")
	writeFile(t, mem, "build/sub/y.o", "more")

	res, err := r.Add("build/x.o")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || !res[0].Ignored || res[0].Digest != "" {
		t.Errorf("Add(build/x.o) = %+v, want ignored", res)
	}

	res, err = r.Add("build")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("Add(build) = %+v, want nothing staged", res)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Staged) != 0 {
		t.Errorf("index should stay empty, got %v", st.Staged)
	}
}

func TestAddMissingFile(t *testing.T) {
	r, _ := newTestRepo(t)
	if _, err := r.Add("nope.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStatus(t *testing.T) {
	r, mem := newTestRepo(t)
	writeFile(t, mem, "a", "1")
	writeFile(t, mem, "b", "2")
	mustAdd(t, r, "a", "b")
	writeFile(t, mem, "b", "changed")

	st, err := r.Status()
	if err != nil {
		t.Fatal(err)
	}
	if st.Branch != "main" || st.Head != "" {
		t.Errorf("status header = %q %q", st.Branch, st.Head)
	}
	if len(st.Staged) != 2 || st.Staged[0].State.String() != "staged" || st.Staged[1].State.String() != "modified" {
		t.Errorf("status rows = %+v", st.Staged)
	}
}

func TestResolveRevision(t *testing.T) {
	r, _ := newTestRepo(t)

	if _, err := r.ResolveRevision("main"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("branch without commits: got %v", err)
	}
	c := mustCommit(t, r, "x")

	got, err := r.ResolveRevision("main")
	if err != nil || got != c {
		t.Errorf("ResolveRevision(main) = %q, %v", got, err)
	}
	got, err = r.ResolveRevision(c)
	if err != nil || got != c {
		t.Errorf("ResolveRevision(digest) = %q, %v", got, err)
	}
	if _, err := r.ResolveRevision("nonsense"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	r, mem := newTestRepo(t)
	writeFile(t, mem, "a", "alpha")
	writeFile(t, mem, "b", "beta")
	mustAdd(t, r, "a", "b")
	c := mustCommit(t, r, "c")

	total, ch, err := r.Verify(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	for chk := range ch {
		if chk.Status != object.OK {
			t.Errorf("%s: %s", chk.Digest, chk.Status)
		}
	}

	commit, _ := r.ShowCommit(c)
	damaged := commit.Changes["a"]
	missing := commit.Changes["b"]
	if err := mem.WriteFile(filepath.Join(r.Store.Objects.ObjectsDir, damaged), []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := mem.Remove(filepath.Join(r.Store.Objects.ObjectsDir, missing)); err != nil {
		t.Fatal(err)
	}

	_, ch, err = r.Verify(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]object.Status{}
	for chk := range ch {
		got[chk.Digest] = chk.Status
	}
	if got[c] != object.OK || got[damaged] != object.Damaged || got[missing] != object.Missing {
		t.Errorf("verify results = %v", got)
	}
}
