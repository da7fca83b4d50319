// Package all registers every snap command.
package all

import (
	_ "github.com/keshon/snap/internal/command/add"
	_ "github.com/keshon/snap/internal/command/branch"
	_ "github.com/keshon/snap/internal/command/checkout"
	_ "github.com/keshon/snap/internal/command/commit"
	_ "github.com/keshon/snap/internal/command/diff"
	_ "github.com/keshon/snap/internal/command/help"
	_ "github.com/keshon/snap/internal/command/init"
	_ "github.com/keshon/snap/internal/command/log"
	_ "github.com/keshon/snap/internal/command/merge"
	_ "github.com/keshon/snap/internal/command/shell"
	_ "github.com/keshon/snap/internal/command/status"
	_ "github.com/keshon/snap/internal/command/verify"
)
