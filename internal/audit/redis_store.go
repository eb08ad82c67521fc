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
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ensure RedisStore implements Store at compile time.
var _ Store = (*RedisStore)(nil)

// RedisStore keeps the trail in Redis. INCR hands out ids, and each entry is
// written together with its index memberships in one MULTI/EXEC block.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a RedisStore whose keys all start with prefix.
func NewRedisStore(
	client redis.Cmdable,
	prefix string,
) *RedisStore {
	if prefix == "" {
		prefix = "bazaar:audit"
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// Ping verifies the server is reachable.
func (s *RedisStore) Ping(
	ctx context.Context,
) error {
	return s.client.Ping(ctx).Err()
}

// Append reserves the next id and writes entry under it.
func (s *RedisStore) Append(
	ctx context.Context,
	entry Entry,
) (Entry, error) {
	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("advance audit sequence: %w", err)
	}

	stored := entry.clone()
	stored.ID = id

	data, err := json.Marshal(stored)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal audit entry: %w", err)
	}

	member := redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, s.entryKey(id), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), member)
		pipe.ZAdd(ctx, s.actorKey(stored.Actor), member)
		return nil
	})
	if err != nil {
		return Entry{}, fmt.Errorf("write audit entry: %w", err)
	}

	return stored, nil
}

// FindByID returns the entry with the given id.
func (s *RedisStore) FindByID(
	ctx context.Context,
	id int64,
) (*Entry, error) {
	data, err := s.client.Get(ctx, s.entryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get audit entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal audit entry: %w", err)
	}

	return &entry, nil
}

// FindAll returns every entry, oldest first.
func (s *RedisStore) FindAll(
	ctx context.Context,
) ([]Entry, error) {
	return s.load(ctx, s.indexKey())
}

// FindByActor returns the entries recorded for actor, oldest first.
func (s *RedisStore) FindByActor(
	ctx context.Context,
	actor string,
) ([]Entry, error) {
	return s.load(ctx, s.actorKey(actor))
}

// Update is refused; the trail is append-only.
func (s *RedisStore) Update(
	_ context.Context,
	_ Entry,
) (bool, error) {
	return false, nil
}

// Delete is refused; the trail is append-only.
func (s *RedisStore) Delete(
	_ context.Context,
	_ int64,
) (bool, error) {
	return false, nil
}

func (s *RedisStore) load(
	ctx context.Context,
	index string,
) ([]Entry, error) {
	ids, err := s.client.ZRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list audit index: %w", err)
	}

	entries := make([]Entry, 0, len(ids))
	if len(ids) == 0 {
		return entries, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		keys = append(keys, s.prefix+":entry:"+raw)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get audit entries: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal audit entry %s: %w", keys[i], err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *RedisStore) seqKey() string {
	return s.prefix + ":seq"
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":index"
}

func (s *RedisStore) entryKey(
	id int64,
) string {
	return s.prefix + ":entry:" + strconv.FormatInt(id, 10)
}

// actorKey indexes entries by actor. Anonymous entries share the empty actor key.
func (s *RedisStore) actorKey(
	actor string,
) string {
	return s.prefix + ":actor:" + actor
}
