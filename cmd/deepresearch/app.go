// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alan-mat/deepresearch/internal/config"
	"github.com/alan-mat/deepresearch/internal/metrics"
	"github.com/alan-mat/deepresearch/internal/provider"
	"github.com/alan-mat/deepresearch/internal/research"
	"github.com/alan-mat/deepresearch/internal/storage"
	"github.com/alan-mat/deepresearch/internal/transport"
	"github.com/redis/go-redis/v9"
)

type app struct {
	pipeline  *research.Pipeline
	store     *storage.FileStore
	transport transport.Transport

	closers []func() error
}

func newApp(ctx context.Context, conf *config.Config) (*app, error) {
	pipeline, err := newPipeline(ctx, conf)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewFileStore(conf.Server.ResponsesDir)
	if err != nil {
		return nil, err
	}

	a := &app{
		pipeline: pipeline,
		store:    store,
	}

	if conf.Transport.Addr != "" {
		rt := newTransport(conf.Transport)
		a.transport = rt
		a.closers = append(a.closers, rt.Close)
	} else {
		a.transport = transport.NewMemoryTransport()
	}

	return a, nil
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func newPipeline(ctx context.Context, conf *config.Config) (*research.Pipeline, error) {
	searchOpts := provider.Options{
		APIKey:  conf.Search.APIKey,
		BaseURL: conf.Search.BaseURL,
	}
	if strings.EqualFold(conf.Search.Provider, string(provider.WebSearcherSearxng)) && conf.Search.Searxng.BaseURL != "" {
		searchOpts.BaseURL = conf.Search.Searxng.BaseURL
	}

	searcher, err := provider.NewWebSearcher(provider.WebSearcherType(conf.Search.Provider), searchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create web searcher: %w", err)
	}

	generator, err := provider.NewGenerator(ctx, provider.GeneratorType(conf.Generator.Provider), provider.Options{
		APIKey:  conf.Generator.APIKey,
		BaseURL: conf.Generator.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	summarizer := research.NewSummarizer(generator,
		research.WithModel(conf.Generator.Model),
		research.WithTemperature(conf.Generator.Temperature),
	)

	return research.NewPipeline(
		research.NewWebSearch(searcher, conf.Search.MaxResults),
		summarizer,
		research.WithObserver(func(stage research.Stage, elapsed time.Duration, err error) {
			metrics.ObserveStage(stage.String(), elapsed, err)
		}),
	), nil
}

func newTransport(conf config.RedisConfig) *transport.RedisTransport {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Username: conf.Username,
		Password: conf.Password,
		DB:       conf.DB,
	})
	return transport.NewRedisTransport(rdb)
}
