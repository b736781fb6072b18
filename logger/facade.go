// Copyright (c) 2015 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package logger

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
	"github.com/uber-common/bark"
)

// Options sets the underlying logger implementation and the minimum output
// level for each of the cluster core's named component loggers.
type Options struct {
	// The underlying logger implementation to use.
	Logger bark.Logger

	// Minimum level for the top-level Cluster facade logger.
	Cluster Level
	// Minimum level for the Framer (sealing/unsealing) logger.
	Framer Level
	// Minimum level for the Registry (member add/remove) logger.
	Registry Level
	// Minimum level for the Affinity (peer ownership) logger.
	Affinity Level
	// Minimum level for the Protocol (sub-message dispatch) logger.
	Protocol Level
	// Minimum level for the Redirector (geo/periodic loop) logger.
	Redirector Level
}

// LogFactory produces the cluster core's six named loggers and lets callers
// attach extra fields that are carried through to every message logged via
// the returned loggers.
type LogFactory interface {
	// Cluster returns the logger used for messages outside of any specific component.
	Cluster() Logger
	// Framer returns the logger used by the message-framing layer.
	Framer() Logger
	// Registry returns the logger used by the member registry.
	Registry() Logger
	// Affinity returns the logger used by the peer affinity map.
	Affinity() Logger
	// Protocol returns the logger used by the control protocol handler.
	Protocol() Logger
	// Redirector returns the logger used by the redirector and periodic loop.
	Redirector() Logger
	WithField(key string, value interface{}) LogFactory
	WithFields(fields Fields) LogFactory
}

// LogFacility is a LogFactory with extra configuration methods.
type LogFacility interface {
	LogFactory
	// Update changes the underlying logger and the levels for each named
	// logger. If no logger is provided, the existing one is preserved; the
	// same is true for any level left at its zero value (unset).
	Update(opts Options)
}

type clusterFacility struct {
	facility Facility
}

// New returns a LogFacility backed by a Facility, producing the cluster
// core's six named loggers. Each can be configured independently to output
// messages only above a minimum level. If no logger is passed, a discarding
// one is used until Update supplies one.
func New(opts Options) LogFacility {
	defaultLogger := bark.NewLoggerFromLogrus(&logrus.Logger{
		Out: ioutil.Discard,
	})
	cf := &clusterFacility{
		facility: NewFacility(defaultLogger),
	}
	cf.Update(opts)
	return cf
}

const (
	topLevelLogger   = "cluster"
	framerLogger     = "framer"
	registryLogger   = "registry"
	affinityLogger   = "affinity"
	protocolLogger   = "protocol"
	redirectorLogger = "redirector"
)

func (cf *clusterFacility) Update(opts Options) {
	if opts.Logger != nil {
		cf.facility.SetLogger(opts.Logger)
	}
	if opts.Cluster != unset {
		cf.facility.SetLevel(topLevelLogger, opts.Cluster)
	}
	if opts.Framer != unset {
		cf.facility.SetLevel(framerLogger, opts.Framer)
	}
	if opts.Registry != unset {
		cf.facility.SetLevel(registryLogger, opts.Registry)
	}
	if opts.Affinity != unset {
		cf.facility.SetLevel(affinityLogger, opts.Affinity)
	}
	if opts.Protocol != unset {
		cf.facility.SetLevel(protocolLogger, opts.Protocol)
	}
	if opts.Redirector != unset {
		cf.facility.SetLevel(redirectorLogger, opts.Redirector)
	}
}

func (cf *clusterFacility) Cluster() Logger    { return cf.facility.Logger(topLevelLogger) }
func (cf *clusterFacility) Framer() Logger     { return cf.facility.Logger(framerLogger) }
func (cf *clusterFacility) Registry() Logger   { return cf.facility.Logger(registryLogger) }
func (cf *clusterFacility) Affinity() Logger   { return cf.facility.Logger(affinityLogger) }
func (cf *clusterFacility) Protocol() Logger   { return cf.facility.Logger(protocolLogger) }
func (cf *clusterFacility) Redirector() Logger { return cf.facility.Logger(redirectorLogger) }

func (cf *clusterFacility) WithField(key string, value interface{}) LogFactory {
	return &clusterFactory{factory: cf.facility.WithField(key, value)}
}
func (cf *clusterFacility) WithFields(fields Fields) LogFactory {
	return &clusterFactory{factory: cf.facility.WithFields(fields)}
}

type clusterFactory struct {
	factory Factory
}

func (cf *clusterFactory) Cluster() Logger    { return cf.factory.Logger(topLevelLogger) }
func (cf *clusterFactory) Framer() Logger     { return cf.factory.Logger(framerLogger) }
func (cf *clusterFactory) Registry() Logger   { return cf.factory.Logger(registryLogger) }
func (cf *clusterFactory) Affinity() Logger   { return cf.factory.Logger(affinityLogger) }
func (cf *clusterFactory) Protocol() Logger   { return cf.factory.Logger(protocolLogger) }
func (cf *clusterFactory) Redirector() Logger { return cf.factory.Logger(redirectorLogger) }

func (cf *clusterFactory) WithField(key string, value interface{}) LogFactory {
	return &clusterFactory{factory: cf.factory.WithField(key, value)}
}
func (cf *clusterFactory) WithFields(fields Fields) LogFactory {
	return &clusterFactory{factory: cf.factory.WithFields(fields)}
}
