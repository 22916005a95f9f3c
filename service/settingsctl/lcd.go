// SPDX-License-Identifier: BSD-3-Clause

package settingsctl

import (
	"context"
	"time"

	"github.com/coolercontrol/coolercontrold/pkg/repository"
)

// lcdPushTimeout bounds one LCD re-push so a stalled link never blocks
// the control loop (spec §4.6, §5).
const lcdPushTimeout = 2 * time.Second

// TickLCD re-pushes every scheduled LCD setting on alternating calls (spec
// §4.6: "LCD updates run every other tick (>= 2s)"), each write bounded by
// lcdPushTimeout. Rendering temp-mode bitmaps and cycling carousel images
// is out of scope here; the caller is responsible for keeping each
// Setting.Lcd.Image current between calls.
func (c *Controller) TickLCD(ctx context.Context) {
	c.mu.Lock()
	c.lcdTicks++
	due := c.lcdTicks%2 == 0
	type target struct {
		deviceUID, channelName string
		setting                repository.Setting
	}
	var targets []target
	if due {
		for deviceUID, channels := range c.lcd {
			for channelName, s := range channels {
				targets = append(targets, target{deviceUID, channelName, s})
			}
		}
	}
	c.mu.Unlock()

	if !due {
		return
	}

	for _, t := range targets {
		func() {
			pctx, cancel := context.WithTimeout(ctx, lcdPushTimeout)
			defer cancel()
			if err := c.apply(pctx, t.deviceUID, t.channelName, t.setting); err != nil && c.logger != nil {
				c.logger.WarnContext(ctx, "lcd push failed", "device", t.deviceUID, "channel", t.channelName, "error", err)
			}
		}()
	}
}
