// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] is usable.
// Every violated group is reported; the result matches each of the
// corresponding sentinel errors.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Crypto.KeyPath == "" {
		errs = append(errs, fmt.Errorf("%w: key path is empty", ErrInvalidCryptoConfigs))
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs))
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err))
	}
	if f := cfg.Log.Format; f != LogFormatConsole && f != LogFormatJSON {
		errs = append(errs, fmt.Errorf("%w: unknown log format %q", ErrInvalidLogConfigs, f))
	}

	if cfg.Workers.SealConcurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: seal concurrency must be at least 1, got %d",
			ErrInvalidWorkerConfigs, cfg.Workers.SealConcurrency))
	}

	return errors.Join(errs...)
}
