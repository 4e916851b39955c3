package backup

import (
	"fmt"
	"os"

	"savesync/src/dirtree"
)

// resolveOverwrite decides whether source may replace dest. A missing
// destination or identical trees proceed without asking; trees that differ
// go to the confirmation callback, with both paths shown first so the user
// knows exactly what is about to be replaced.
func (e *Engine) resolveOverwrite(name, source, dest string) (bool, error) {
	if _, err := os.Stat(dest); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("inspecting %s: %w", dest, err)
	}
	if dirtree.EqualPaths(source, dest) {
		e.log.Debug("trees already match", "entry", name)
		return true, nil
	}
	fmt.Fprintf(e.opts.Out, "[%s] contents differ\n  source: %s\n  dest:   %s\n",
		name, e.display(source), e.display(dest))
	return e.opts.Confirm(name, source, dest)
}
