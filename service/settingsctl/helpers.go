// SPDX-License-Identifier: BSD-3-Clause

package settingsctl

import (
	"encoding/json"

	"github.com/nats-io/nats.go/micro"
)

func decodeRequest(req micro.Request, v any) error {
	return json.Unmarshal(req.Data(), v)
}

func respondOK(req micro.Request) {
	_ = req.Respond([]byte(`{"status":"ok"}`))
}

func respondJSON(req micro.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		_ = req.Error("500", err.Error(), nil)
		return
	}
	_ = req.Respond(data)
}
