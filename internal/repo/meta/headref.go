package meta

import (
	"fmt"
	"strings"

	"github.com/keshon/snap/internal/util"
)

// HeadRef is the content of HEAD, e.g. "ref: branches/main".
type HeadRef string

const headRefPrefix = "ref: branches/"

// BranchName returns the branch HEAD points at. A bare name is accepted too.
func (r HeadRef) BranchName() string {
	s := strings.TrimSpace(string(r))
	return strings.TrimPrefix(s, headRefPrefix)
}

// GetHeadRef reads HEAD.
func (mc *MetaContext) GetHeadRef() (HeadRef, error) {
	data, err := mc.FS.ReadFile(mc.Config.HeadFile())
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	ref := HeadRef(strings.TrimSpace(string(data)))
	if ref.BranchName() == "" {
		return "", fmt.Errorf("HEAD is empty")
	}
	return ref, nil
}

// SetHeadRef points HEAD at branchName. The branch need not exist yet.
func (mc *MetaContext) SetHeadRef(branchName string) (HeadRef, error) {
	if err := ValidateBranchName(branchName); err != nil {
		return "", err
	}
	ref := HeadRef(headRefPrefix + branchName)
	if err := util.WriteFileAtomic(mc.FS, mc.Config.HeadFile(), []byte(ref+"\n")); err != nil {
		return "", fmt.Errorf("failed to write HEAD: %w", err)
	}
	return ref, nil
}

// CurrentBranchName returns the name HEAD points at.
func (mc *MetaContext) CurrentBranchName() (string, error) {
	ref, err := mc.GetHeadRef()
	if err != nil {
		return "", err
	}
	return ref.BranchName(), nil
}

// GetCurrentBranch loads the record HEAD points at. A HEAD naming a branch
// with no record is reported as ErrNotFound; records are only created by
// init and by forking an existing branch.
func (mc *MetaContext) GetCurrentBranch() (*Branch, error) {
	name, err := mc.CurrentBranchName()
	if err != nil {
		return nil, err
	}
	b, err := mc.GetBranch(name)
	if err != nil {
		return nil, fmt.Errorf("current branch: %w", err)
	}
	return b, nil
}
