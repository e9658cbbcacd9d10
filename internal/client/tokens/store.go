package tokens

import (
	"context"
	"errors"
	"fmt"

	"github.com/mnedelko/geniable/internal/common"
	"github.com/mnedelko/geniable/internal/logging"
)

// Store persists the credential bundle using a preferred secure backend with
// a file fallback. Exactly one backend is authoritative at any time: reads
// try the secure backend first, writes fall back to the file only when the
// secure backend fails.
//
// SRP ephemeral values never pass through the store.
type Store struct {
	secure Backend
	file   Backend
	log    logging.Logger
}

// NewStore builds a Store over the given backends. secure may be nil when
// keyring use is disabled, in which case only the file backend is used.
func NewStore(secure, file Backend, log logging.Logger) *Store {
	return &Store{secure: secure, file: file, log: log}
}

// Store serializes and persists the bundle. A secure-backend failure is
// recovered by writing the file fallback; an error is returned only when
// both backends fail.
func (s *Store) Store(ctx context.Context, t *AuthTokens) error {
	data, err := t.marshal()
	if err != nil {
		return fmt.Errorf("serializing tokens: %w", err)
	}

	if s.secure != nil {
		if err := s.secure.Set(string(data)); err == nil {
			s.log.Debug(ctx, "tokens stored in keyring")
			return nil
		} else {
			s.log.Warn(ctx, "keyring storage failed, using file fallback", "error", err)
		}
	}

	if err := s.file.Set(string(data)); err != nil {
		return fmt.Errorf("storing tokens: %w", err)
	}
	s.log.Debug(ctx, "tokens stored in file")
	return nil
}

// Load retrieves the stored bundle, or nil when none is stored. A corrupt or
// unreadable entry is treated as absent so callers uniformly re-authenticate.
func (s *Store) Load(ctx context.Context) *AuthTokens {
	var data string

	if s.secure != nil {
		v, err := s.secure.Get()
		switch {
		case err == nil:
			data = v
		case errors.Is(err, common.ErrNotFound):
		default:
			s.log.Warn(ctx, "keyring retrieval failed", "error", err)
		}
	}

	if data == "" {
		v, err := s.file.Get()
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				s.log.Warn(ctx, "token file retrieval failed", "error", err)
			}
			return nil
		}
		data = v
	}

	t, err := unmarshalTokens([]byte(data))
	if err != nil {
		s.log.Error(ctx, "failed to parse stored tokens", "error", err)
		return nil
	}
	return t
}

// Clear removes the bundle from both backends regardless of which one
// currently holds it, so stale copies never linger.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error

	if s.secure != nil {
		if err := s.secure.Delete(); err != nil {
			s.log.Warn(ctx, "keyring clear failed", "error", err)
			errs = append(errs, err)
		}
	}
	if err := s.file.Delete(); err != nil {
		s.log.Warn(ctx, "token file clear failed", "error", err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
