// SPDX-License-Identifier: BSD-3-Clause

// Package hwmonrepo implements the generic hwmon repository: fan PWM and
// temperature channels discovered by globbing /sys/class/hwmon, plus the
// power-cap (RAPL) and drivetemp collaborators that ride along on the same
// sysfs tree. It adapts pkg/hwmon's sysfs primitives into a
// repository.Repository the control engine can drive polymorphically
// alongside the liquidctl, CPU, GPU and custom-sensor repositories.
package hwmonrepo
