// Package config loads environment variables into typed structs.
//
// Each configuration type is parsed once with caarlos0/env and cached for
// subsequent calls. A .env file in the working directory is loaded on first
// use; variables already set in the environment win.
//
//	type Config struct {
//		Mailer mailer.Config
//		Resend resend.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// MustLoad panics instead of returning an error and suits program startup.
package config
