// SPDX-License-Identifier: BSD-3-Clause

package daemon

import "errors"

var (
	// ErrNameEmpty indicates the daemon was configured with an empty name.
	ErrNameEmpty = errors.New("daemon: name must not be empty")
	// ErrIPCNil indicates neither an external ipcConn nor a configured IPC
	// service was provided to Run.
	ErrIPCNil = errors.New("daemon: no ipc connection provider available")
	// ErrAddProcess indicates a supervised process could not be added to
	// the oversight tree.
	ErrAddProcess = errors.New("daemon: failed to add process")
	// ErrPanicked wraps a recovered panic from Run.
	ErrPanicked = errors.New("daemon: panicked")
	// ErrDeviceNotFound indicates no configured repository owns the
	// requested device UID.
	ErrDeviceNotFound = errors.New("daemon: device not found")
	// ErrNoRepositories indicates the daemon was started with no
	// repositories configured.
	ErrNoRepositories = errors.New("daemon: no repositories configured")
)
