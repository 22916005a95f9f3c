// SPDX-License-Identifier: BSD-3-Clause

// Package gpurepo implements the repository.Repository for discrete GPUs:
// AMD cards reporting through the amdgpu hwmon node (reusing pkg/hwmon's
// sysfs primitives directly, since service/hwmonrepo excludes amdgpu to
// avoid double reporting), and NVIDIA cards queried through nvidia-smi.
package gpurepo
