package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	redisclient "github.com/zatekoja/smarthealthcare/internal/infrastructure/clients/redis"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

// collection stores JSON documents of one entity kind.
//
// Layout:
//
//	<kind>:<id>               JSON document
//	<kind>:index              sorted set of ids scored by sort time (unix nanos)
//	<kind>:<index>:<value>    set of ids sharing a reference, e.g. appointments:by_patient:<id>
type collection[T any] struct {
	client   *redisclient.Client
	kind     string
	notFound string
	id       func(*T) string
	score    func(*T) float64
	refs     func(*T) map[string]string
}

func (c *collection[T]) docKey(id string) string {
	return fmt.Sprintf("%s:%s", c.kind, id)
}

func (c *collection[T]) indexKey() string {
	return c.kind + ":index"
}

func (c *collection[T]) refKey(index, value string) string {
	return fmt.Sprintf("%s:%s:%s", c.kind, index, value)
}

func (c *collection[T]) references(doc *T) map[string]string {
	if c.refs == nil {
		return nil
	}
	return c.refs(doc)
}

func (c *collection[T]) create(ctx context.Context, doc *T) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to encode %s document", c.kind), err)
	}

	id := c.id(doc)
	_, err = c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.docKey(id), payload, 0)
		pipe.ZAdd(ctx, c.indexKey(), redis.Z{Score: c.score(doc), Member: id})
		for index, value := range c.references(doc) {
			if value != "" {
				pipe.SAdd(ctx, c.refKey(index, value), id)
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to store %s document", c.kind), err)
	}
	return nil
}

func (c *collection[T]) get(ctx context.Context, id string) (*T, error) {
	payload, err := c.client.Client().Get(ctx, c.docKey(id)).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewNotFoundError(c.notFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to read %s document", c.kind), err)
	}

	doc := new(T)
	if err := json.Unmarshal(payload, doc); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to decode %s document", c.kind), err)
	}
	return doc, nil
}

// list returns every document, highest score first
func (c *collection[T]) list(ctx context.Context) ([]*T, error) {
	ids, err := c.client.Client().ZRevRange(ctx, c.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to read %s index", c.kind), err)
	}
	return c.load(ctx, ids)
}

// listBy returns the documents referencing value through index, highest score first
func (c *collection[T]) listBy(ctx context.Context, index, value string) ([]*T, error) {
	ids, err := c.client.Client().SMembers(ctx, c.refKey(index, value)).Result()
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to read %s %s index", c.kind, index), err)
	}

	docs, err := c.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return c.score(docs[i]) > c.score(docs[j])
	})
	return docs, nil
}

// filter returns the documents for which keep is true, highest score first
func (c *collection[T]) filter(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	all, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*T, 0, len(all))
	for _, doc := range all {
		if keep(doc) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

func (c *collection[T]) update(ctx context.Context, doc *T) error {
	id := c.id(doc)
	previous, err := c.get(ctx, id)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to encode %s document", c.kind), err)
	}

	oldRefs := c.references(previous)
	newRefs := c.references(doc)
	_, err = c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.docKey(id), payload, 0)
		for index, oldValue := range oldRefs {
			if newValue := newRefs[index]; oldValue != newValue && oldValue != "" {
				pipe.SRem(ctx, c.refKey(index, oldValue), id)
			}
		}
		for index, value := range newRefs {
			if value != "" {
				pipe.SAdd(ctx, c.refKey(index, value), id)
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to update %s document", c.kind), err)
	}
	return nil
}

func (c *collection[T]) delete(ctx context.Context, id string) (*T, error) {
	doc, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.docKey(id))
		pipe.ZRem(ctx, c.indexKey(), id)
		for index, value := range c.references(doc) {
			if value != "" {
				pipe.SRem(ctx, c.refKey(index, value), id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to delete %s document", c.kind), err)
	}
	return doc, nil
}

// load fetches documents in the order of ids, skipping ids whose document is gone
func (c *collection[T]) load(ctx context.Context, ids []string) ([]*T, error) {
	docs := make([]*T, 0, len(ids))
	if len(ids) == 0 {
		return docs, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.docKey(id)
	}

	values, err := c.client.Client().MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to read %s documents", c.kind), err)
	}

	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		doc := new(T)
		if err := json.Unmarshal([]byte(raw), doc); err != nil {
			return nil, apperrors.NewInternalError(fmt.Sprintf("failed to decode %s document", c.kind), err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
