// SPDX-License-Identifier: BSD-3-Clause

package liquidctlrepo

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-resty/resty/v2"
)

// bridgeDevice is the wire shape of one entry in GET /devices.
type bridgeDevice struct {
	ID          int            `json:"id"`
	Description string         `json:"description"`
	DeviceType  string         `json:"device_type"`
	Properties  map[string]any `json:"properties"`
}

// bridgeStatusEntry is one (label, value, unit) triple from GET
// /devices/{id}/status.
type bridgeStatusEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// bridgeClient wraps the resty HTTP client with the liquidctl bridge's
// specific endpoints (spec §4.3).
type bridgeClient struct {
	http *resty.Client
}

func newBridgeClient(cfg *config) *bridgeClient {
	c := resty.New().
		SetBaseURL(cfg.baseURL).
		SetTimeout(cfg.requestTimeout)
	return &bridgeClient{http: c}
}

// handshake blocks until the bridge answers /handshake or the retry budget
// is exhausted.
func (b *bridgeClient) handshake(ctx context.Context, cfg *config) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		var body struct {
			Shake bool `json:"shake"`
		}
		resp, err := b.http.R().SetContext(ctx).SetResult(&body).Get("/handshake")
		if err != nil || resp.IsError() || !body.Shake {
			return struct{}{}, fmt.Errorf("%w: not ready", ErrHandshakeFailed)
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(cfg.handshakeInterval)),
		backoff.WithMaxTries(uint(cfg.handshakeRetries)),
	)
	if err != nil {
		return ErrHandshakeFailed
	}
	return nil
}

func (b *bridgeClient) listDevices(ctx context.Context) ([]bridgeDevice, error) {
	var devices []bridgeDevice
	resp, err := b.http.R().SetContext(ctx).SetResult(&devices).Get("/devices")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBridgeRequest, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrBridgeRequest, resp.StatusCode())
	}
	return devices, nil
}

func (b *bridgeClient) connectAll(ctx context.Context) error {
	resp, err := b.http.R().SetContext(ctx).Post("/devices/connect")
	return requestErr(resp, err)
}

func (b *bridgeClient) initialize(ctx context.Context, id int, pumpMode string) ([]bridgeStatusEntry, error) {
	body := map[string]string{}
	if pumpMode != "" {
		body["pump_mode"] = pumpMode
	}
	var status []bridgeStatusEntry
	resp, err := b.http.R().SetContext(ctx).SetBody(body).SetResult(&status).
		Post(fmt.Sprintf("/devices/%d/initialize", id))
	if err := requestErr(resp, err); err != nil {
		return nil, err
	}
	return status, nil
}

func (b *bridgeClient) status(ctx context.Context, id int) ([]bridgeStatusEntry, error) {
	var status []bridgeStatusEntry
	resp, err := b.http.R().SetContext(ctx).SetResult(&status).
		Get(fmt.Sprintf("/devices/%d/status", id))
	if err := requestErr(resp, err); err != nil {
		return nil, err
	}
	return status, nil
}

func (b *bridgeClient) setFixedSpeed(ctx context.Context, id int, channel string, dutyPercent float64) error {
	resp, err := b.http.R().SetContext(ctx).SetBody(map[string]float64{"duty": dutyPercent}).
		Put(fmt.Sprintf("/devices/%d/speed/%s/fixed", id, channel))
	return requestErr(resp, err)
}

func (b *bridgeClient) setLighting(ctx context.Context, id int, channel string, mode string, colors [][3]uint8, speed string, backward bool) error {
	resp, err := b.http.R().SetContext(ctx).SetBody(map[string]any{
		"mode":     mode,
		"colors":   colors,
		"speed":    speed,
		"backward": backward,
	}).Put(fmt.Sprintf("/devices/%d/speed/%s/lighting", id, channel))
	return requestErr(resp, err)
}

func (b *bridgeClient) setScreen(ctx context.Context, id int, channel string, mode string, image []byte) error {
	resp, err := b.http.R().SetContext(ctx).SetBody(map[string]any{
		"mode":  mode,
		"image": image,
	}).Put(fmt.Sprintf("/devices/%d/speed/%s/screen", id, channel))
	return requestErr(resp, err)
}

func (b *bridgeClient) quit(ctx context.Context) error {
	resp, err := b.http.R().SetContext(ctx).Post("/quit")
	return requestErr(resp, err)
}

func requestErr(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBridgeRequest, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrBridgeRequest, resp.StatusCode())
	}
	return nil
}
