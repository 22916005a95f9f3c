// SPDX-License-Identifier: BSD-3-Clause

// Package modemgr owns the set of saved Modes and their Activators. It
// exposes CRUD and activation over NATS for the external API and an
// ActivateMode method service/daemon calls to reapply the active mode on
// resume.
package modemgr
