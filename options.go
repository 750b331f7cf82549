// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"time"

	"code.hybscloud.com/vsockrpc/internal/logging"
)

// Options holds the tunable parameters of a Peer, Client or RpcBuilder.
// Construction is programmatic only: there is no env var or flag parsing,
// matching a library rather than a standalone binary.
type Options struct {
	queueDepth    int
	bodyPoolCap   int
	headerPoolCap int
	callTimeout   time.Duration
	logger        logging.Logger
}

var defaultOptions = Options{
	queueDepth:    128,
	bodyPoolCap:   64,
	headerPoolCap: 128,
	callTimeout:   5 * time.Second,
	logger:        logging.Default(),
}

// Option mutates an Options value. Apply with apply(&opts, opts...).
type Option func(*Options)

func apply(o *Options, opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithQueueDepth sets the capacity of a Peer's outgoing/incoming channels.
// Panics-free: non-positive values are ignored and the default is kept.
func WithQueueDepth(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.queueDepth = n
		}
	}
}

// WithBodyPoolCap sets the maximum number of AlignedBuffers a BodyPool
// retains for reuse.
func WithBodyPoolCap(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.bodyPoolCap = n
		}
	}
}

// WithHeaderPoolCap sets the maximum number of header buffers a HeaderPool
// retains for reuse.
func WithHeaderPoolCap(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.headerPoolCap = n
		}
	}
}

// WithCallTimeout overrides the default 5-second Client.Call deadline.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.callTimeout = d
		}
	}
}

// WithLogger injects a logging.Logger. The zero value keeps the package
// default logger, which writes leveled lines to os.Stderr.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
