package engine

import "os"

// OSFilesystem is the production rename collaborator.
type OSFilesystem struct{}

// Rename atomically moves oldPath onto newPath.
func (OSFilesystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}
