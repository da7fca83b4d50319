package file

// State classifies a staged path against the working tree.
type State int

const (
	Staged   State = iota // working file matches the staged content
	Modified              // working file changed since it was staged
	Missing               // working file no longer exists
)

func (s State) String() string {
	switch s {
	case Staged:
		return "staged"
	case Modified:
		return "modified"
	case Missing:
		return "missing"
	}
	return "unknown"
}

// PathStatus is one row of a status report.
type PathStatus struct {
	Path   string
	Digest string
	State  State
}

// Status reports every staged path, sorted, with its working-tree state.
// Size is compared first; the xxh3 fingerprint settles equal sizes.
func (fc *FileContext) Status() ([]PathStatus, error) {
	idx, err := fc.LoadIndex()
	if err != nil {
		return nil, err
	}

	out := make([]PathStatus, 0, len(idx))
	for _, p := range idx.Paths() {
		e := idx[p]
		ps := PathStatus{Path: p, Digest: e.Digest, State: Staged}

		abs := fc.AbsPath(p)
		fi, err := fc.FS.Stat(abs)
		switch {
		case err != nil || fi.IsDir():
			ps.State = Missing
		case fi.Size() != e.Size:
			ps.State = Modified
		default:
			data, err := fc.FS.ReadFile(abs)
			if err != nil {
				ps.State = Missing
			} else if Fingerprint(data) != e.Fingerprint {
				ps.State = Modified
			}
		}
		out = append(out, ps)
	}
	return out, nil
}
