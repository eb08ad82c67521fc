// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"
)

// ensure KVStore implements Store at compile time.
var _ Store = (*KVStore)(nil)

const (
	kvSequenceKey  = "seq"
	kvEntryPrefix  = "entry."
	kvMaxCASRounds = 64
)

// KeyValue is the subset of a NATS KeyValue bucket used by KVStore.
type KeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Create(key string, value []byte) (uint64, error)
	Update(key string, value []byte, last uint64) (uint64, error)
	Keys(opts ...nats.WatchOpt) ([]string, error)
}

// KVStore keeps the trail in a NATS KeyValue bucket. Ids come from a counter
// key advanced with compare-and-set, and every entry is written with Create,
// so an entry is never overwritten.
type KVStore struct {
	kv     KeyValue
	logger *slog.Logger
}

// NewKVStore creates a new KVStore.
func NewKVStore(
	logger *slog.Logger,
	kv KeyValue,
) *KVStore {
	return &KVStore{
		kv:     kv,
		logger: logger,
	}
}

// Append reserves the next id and writes entry under it.
func (s *KVStore) Append(
	_ context.Context,
	entry Entry,
) (Entry, error) {
	id, err := s.nextID()
	if err != nil {
		return Entry{}, err
	}

	stored := entry.clone()
	stored.ID = id

	data, err := json.Marshal(stored)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal audit entry: %w", err)
	}

	if _, err := s.kv.Create(entryKey(id), data); err != nil {
		return Entry{}, fmt.Errorf("create audit entry: %w", err)
	}

	return stored, nil
}

// FindByID returns the entry with the given id.
func (s *KVStore) FindByID(
	_ context.Context,
	id int64,
) (*Entry, error) {
	if id < 1 {
		return nil, ErrNotFound
	}

	kve, err := s.kv.Get(entryKey(id))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get audit entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(kve.Value(), &entry); err != nil {
		return nil, fmt.Errorf("unmarshal audit entry: %w", err)
	}

	return &entry, nil
}

// FindAll returns every entry, oldest first.
func (s *KVStore) FindAll(
	ctx context.Context,
) ([]Entry, error) {
	return s.scan(ctx, func(Entry) bool { return true })
}

// FindByActor returns the entries recorded for actor, oldest first.
func (s *KVStore) FindByActor(
	ctx context.Context,
	actor string,
) ([]Entry, error) {
	return s.scan(ctx, func(e Entry) bool { return e.Actor == actor })
}

// Update is refused; the trail is append-only.
func (s *KVStore) Update(
	_ context.Context,
	_ Entry,
) (bool, error) {
	return false, nil
}

// Delete is refused; the trail is append-only.
func (s *KVStore) Delete(
	_ context.Context,
	_ int64,
) (bool, error) {
	return false, nil
}

func (s *KVStore) scan(
	_ context.Context,
	keep func(Entry) bool,
) ([]Entry, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		// nats.ErrNoKeysFound means the bucket is empty
		if errors.Is(err, nats.ErrNoKeysFound) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("list audit keys: %w", err)
	}

	entryKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, kvEntryPrefix) {
			entryKeys = append(entryKeys, key)
		}
	}

	// Zero-padded keys sort in id order.
	sort.Strings(entryKeys)

	entries := make([]Entry, 0, len(entryKeys))
	for _, key := range entryKeys {
		kve, err := s.kv.Get(key)
		if err != nil {
			return nil, fmt.Errorf("get audit entry %s: %w", key, err)
		}

		var entry Entry
		if err := json.Unmarshal(kve.Value(), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal audit entry %s: %w", key, err)
		}

		if keep(entry) {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// nextID advances the sequence key by one and returns the new value.
func (s *KVStore) nextID() (int64, error) {
	for range kvMaxCASRounds {
		kve, err := s.kv.Get(kvSequenceKey)
		if errors.Is(err, nats.ErrKeyNotFound) {
			if _, err := s.kv.Create(kvSequenceKey, []byte("1")); err != nil {
				if isCASConflict(err) {
					continue
				}
				return 0, fmt.Errorf("create audit sequence: %w", err)
			}
			return 1, nil
		}
		if err != nil {
			return 0, fmt.Errorf("get audit sequence: %w", err)
		}

		current, err := strconv.ParseInt(string(kve.Value()), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse audit sequence: %w", err)
		}

		next := current + 1
		if _, err := s.kv.Update(
			kvSequenceKey,
			[]byte(strconv.FormatInt(next, 10)),
			kve.Revision(),
		); err != nil {
			if isCASConflict(err) {
				s.logger.Debug(
					"audit sequence moved, retrying",
					slog.Int64("seen", current),
				)
				continue
			}
			return 0, fmt.Errorf("advance audit sequence: %w", err)
		}

		return next, nil
	}

	return 0, fmt.Errorf("advance audit sequence: gave up after %d conflicting attempts", kvMaxCASRounds)
}

func isCASConflict(
	err error,
) bool {
	if errors.Is(err, nats.ErrKeyExists) {
		return true
	}

	var apiErr *nats.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == nats.JSErrCodeStreamWrongLastSequence
	}

	return false
}

func entryKey(
	id int64,
) string {
	return fmt.Sprintf("%s%020d", kvEntryPrefix, id)
}
