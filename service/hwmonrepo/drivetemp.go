// SPDX-License-Identifier: BSD-3-Clause

package hwmonrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Legacy ATA ioctl constants, absent from golang.org/x/sys/unix because
// they predate the modern SG_IO/NVMe passthrough interfaces.
const (
	hdioDriveCmd       = 0x031f
	ataCheckPowerMode  = 0xe5
	ataPowerModeActive = 0xff
)

// driveTemp resolves the block device backing a drivetemp hwmon node and
// reports whether it is currently in standby, so a temperature poll never
// has to spin it up (spec §4.2).
type driveTemp struct {
	blockDevice string

	mu sync.Mutex
}

// newDriveTemp resolves the backing block device from the drivetemp hwmon
// node's device/block/ symlink.
func newDriveTemp(devPath string) *driveTemp {
	blockDir := filepath.Join(devPath, "device", "block")
	entries, err := os.ReadDir(blockDir)
	if err != nil || len(entries) == 0 {
		return &driveTemp{}
	}
	return &driveTemp{blockDevice: "/dev/" + entries[0].Name()}
}

// inStandby issues HDIO_DRIVE_CMD/ATA_CHECKPOWERMODE against the backing
// block device. A drive that does not support the command (most SSDs and
// some USB bridges) is treated as never in standby.
func (d *driveTemp) inStandby() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.blockDevice == "" {
		return false, nil
	}

	fd, err := unix.Open(d.blockDevice, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if strings.Contains(err.Error(), "permission") {
			return false, fmt.Errorf("opening %s: %w", d.blockDevice, err)
		}
		return false, nil
	}
	defer unix.Close(fd)

	var args [4]byte
	args[0] = ataCheckPowerMode

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), hdioDriveCmd, uintptr(unsafe.Pointer(&args[0])))
	if errno != 0 {
		return false, nil
	}

	return args[2] != ataPowerModeActive, nil
}
