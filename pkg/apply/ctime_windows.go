//go:build windows

package apply

import (
	"syscall"
	"time"
)

// setCreationTime sets the Windows creation time for path.
func setCreationTime(path string, t time.Time) error {
	pathp, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	h, err := syscall.CreateFile(pathp,
		syscall.FILE_WRITE_ATTRIBUTES, syscall.FILE_SHARE_WRITE, nil,
		syscall.OPEN_EXISTING, syscall.FILE_FLAG_BACKUP_SEMANTICS, 0)
	if err != nil {
		return err
	}
	defer syscall.Close(h)

	ctime := syscall.NsecToFiletime(t.UnixNano())
	return syscall.SetFileTime(h, &ctime, nil, nil)
}
