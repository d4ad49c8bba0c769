// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306"

	"github.com/GermanBionicSystems/ledsniffer/console"
	"github.com/GermanBionicSystems/ledsniffer/internal/config"
	"github.com/GermanBionicSystems/ledsniffer/max7219"
	"github.com/GermanBionicSystems/ledsniffer/panel"
	"github.com/GermanBionicSystems/ledsniffer/statusweb"
	"github.com/GermanBionicSystems/ledsniffer/textsink"
)

// outputs are the configured destinations of both strings.
type outputs struct {
	time, state *textsink.Tee
	// closers run in reverse order.
	closers []func() error
}

func (o *outputs) onClose(f func() error) {
	o.closers = append(o.closers, f)
}

func (o *outputs) close() {
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i](); err != nil {
			log.Printf("close: %v", err)
		}
	}
	o.closers = nil
}

func buildOutputs(ctx context.Context, cfg *config.OutputsConfig) (*outputs, error) {
	o := &outputs{}
	var times, states []textsink.Sink

	if cfg.LogEnabled() {
		times = append(times, textsink.NewLog("time", nil))
		states = append(states, textsink.NewLog("state", nil))
	}

	if cfg.Console {
		c := console.New(nil)
		o.onClose(c.Halt)
		times = append(times, c.Time())
		states = append(states, c.State())
	}

	if m := cfg.MAX7219; m != nil {
		dev, err := buildMAX7219(o, m)
		if err != nil {
			o.close()
			return nil, err
		}
		times = append(times, dev)
	}

	if p := cfg.Panel; p != nil {
		pn, err := buildPanel(o, p)
		if err != nil {
			o.close()
			return nil, err
		}
		times = append(times, pn.Time())
		states = append(states, pn.State())
	}

	if h := cfg.HTTP; h != nil {
		sw, err := buildHTTP(ctx, o, h)
		if err != nil {
			o.close()
			return nil, err
		}
		times = append(times, sw.Time())
		states = append(states, sw.State())
	}

	o.time = textsink.NewTee(times...)
	o.state = textsink.NewTee(states...)
	return o, nil
}

func buildMAX7219(o *outputs, cfg *config.MAX7219Config) (*max7219.Dev, error) {
	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, fmt.Errorf("max7219: %w", err)
	}
	o.onClose(port.Close)
	dev, err := max7219.NewSPI(port, cfg.Digits)
	if err != nil {
		return nil, err
	}
	o.onClose(dev.Halt)
	if err := dev.SetIntensity(byte(cfg.Intensity)); err != nil {
		return nil, fmt.Errorf("max7219: %w", err)
	}
	log.Printf("%s ready", dev)
	return dev, nil
}

func buildPanel(o *outputs, cfg *config.PanelConfig) (*panel.Panel, error) {
	bus, err := i2creg.Open(cfg.I2C)
	if err != nil {
		return nil, fmt.Errorf("panel: %w", err)
	}
	o.onClose(bus.Close)
	opts := ssd1306.DefaultOpts
	opts.W = cfg.Width
	opts.H = cfg.Height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("panel: %w", err)
	}
	p, err := panel.New(dev, nil)
	if err != nil {
		return nil, err
	}
	o.onClose(p.Halt)
	log.Printf("%s ready", p)
	return p, nil
}

func buildHTTP(ctx context.Context, o *outputs, cfg *config.HTTPConfig) (*statusweb.Server, error) {
	format, err := statusweb.FormatFromString(cfg.Format)
	if err != nil {
		return nil, err
	}
	sw := statusweb.New(&statusweb.Options{Format: format})
	mux := http.NewServeMux()
	mux.Handle("/", sw)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http: %v", err)
		}
	}()
	o.onClose(func() error {
		// Streams only end when told to.
		_ = sw.Halt()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	log.Printf("%s listening on %s", sw, cfg.Listen)

	if cfg.MDNS {
		a, err := statusweb.Advertise(cfg.Instance, cfg.Listen)
		if err != nil {
			return nil, err
		}
		o.onClose(a.Halt)
		log.Printf("%s: advertising %q as %s", a, cfg.Instance, statusweb.ServiceType)
	}
	return sw, nil
}
