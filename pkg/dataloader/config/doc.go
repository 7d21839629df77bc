/*
Package config loads registry settings from YAML or JSON files.

# Overview

Settings describes how a registry should be named, logged, instrumented
and where its statistics history is kept:

	name: request
	log_level: debug
	log_format: json
	metrics: true
	tracing: false
	stats_store:
	  driver: sqlite
	  path: ./stats.db

# Usage

	s, err := config.FromFile("dataloader.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	logger := s.Logger(os.Stderr)
	reg := dataloader.New(s.Options(logger)...)

	store, err := s.OpenStatsStore()
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

Missing fields fall back to Defaults().
*/
package config
