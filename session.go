// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"context"

	"code.hybscloud.com/vsockrpc/internal/logging"
)

// sessionLoop reads decoded envelopes off incoming and, per envelope,
// either dispatches a Request to handler (encoding and sending its
// Response back with the same id, or silently dropping the buffer on a
// handler error) or forwards a Response to the pending call it answers.
//
// One goroutine is spawned per inbound buffer, mirroring the original's
// compio::runtime::spawn(...).detach() per packet: request handling never
// blocks the session loop from picking up the next inbound frame.
func sessionLoop(incoming <-chan *AlignedBuffer, handle PeerHandle, pending *pendingMap, pool *BodyPool, protocol Protocol, handler ServiceHandler, logger logging.Logger) {
	defer pending.closeAll()

	for raw := range incoming {
		go func(raw *AlignedBuffer) {
			env, err := protocol.Decode(raw.Bytes())
			if err != nil {
				logger.Errorf("session: protocol decode error: %v", err)
				pool.Release(raw)
				return
			}

			switch env.Kind {
			case KindRequest:
				defer pool.Release(raw)
				resp, err := handler.OnRequest(env.Payload)
				if err != nil {
					logger.Debugf("session: handler declined request %d: %v", env.ID, err)
					return
				}
				out := pool.Acquire(0)
				out, err = protocol.EncodeResponse(env.ID, resp, out)
				if err != nil {
					logger.Errorf("session: failed to encode response %d: %v", env.ID, err)
					pool.Release(out)
					return
				}
				if err := handle.Send(context.Background(), out); err != nil {
					logger.Errorf("session: failed to send response %d: %v", env.ID, err)
				}

			case KindResponse:
				if ch, ok := pending.remove(env.ID); ok {
					ch <- raw
				} else {
					logger.Debugf("session: no pending call for response %d", env.ID)
					pool.Release(raw)
				}
			}
		}(raw)
	}
}
