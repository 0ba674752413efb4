// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/newsmaint/core"
	"github.com/poiesic/newsmaint/store"
	"github.com/supabase-community/postgrest-go"
)

const (
	// DefaultTable is the table holding the articles.
	DefaultTable = "latest_news"

	// DefaultPageSize is the page size used when fetching repair
	// candidates and no explicit size was requested.
	DefaultPageSize = 2
)

// redirectorFilter matches the recognized redirector URL shapes:
// google.com/share, google.com/url and share.google links.
// PostgREST "or" syntax, with * as the wildcard.
const redirectorFilter = "url.ilike.*google.com/share*," +
	"url.ilike.*google.com/url*," +
	"url.ilike.*share.google*"

// Store implements store.ArticleStore against a Supabase PostgREST endpoint.
type Store struct {
	client *postgrest.Client
	table  string
	logger *slog.Logger
}

// New creates a Store for the project at baseURL, authenticating with the
// service-role key. baseURL is the project URL (https://xyz.supabase.co);
// the /rest/v1 prefix is appended here. An empty table selects DefaultTable.
func New(baseURL, serviceKey, table string) *Store {
	if table == "" {
		table = DefaultTable
	}

	rest := strings.TrimSuffix(baseURL, "/") + "/rest/v1"
	client := postgrest.NewClient(rest, "public", map[string]string{
		"apikey":        serviceKey,
		"Authorization": "Bearer " + serviceKey,
	})

	return &Store{
		client: client,
		table:  table,
		logger: slog.Default().With("component", "supabase-store"),
	}
}

// summaryPresentFilter requires ai_summary to be set. The negated is-null
// condition has to travel inside an or group; the builder's Filter
// operator list does not cover not.is.
const summaryPresentFilter = "ai_summary.not.is.null"

// EmbedCandidates returns articles with an AI summary but no embedding.
func (s *Store) EmbedCandidates(ctx context.Context) ([]core.EmbedCandidate, error) {
	data, _, err := s.client.From(s.table).
		Select("id,title,ai_summary", "", false).
		Is("embedding", "null").
		Or(summaryPresentFilter, "").
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("select embed candidates: %w", err)
	}

	var candidates []core.EmbedCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("decode embed candidates: %w", store.ErrInvalidResponse)
	}

	s.logger.Debug("selected embed candidates", "count", len(candidates))
	return candidates, nil
}

// RepairCandidates returns articles whose url matches a redirector pattern,
// paging through the table in id order until a short page ends the snapshot.
func (s *Store) RepairCandidates(ctx context.Context, pageSize int) ([]core.RepairCandidate, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var candidates []core.RepairCandidate
	for offset := 0; ; offset += pageSize {
		data, _, err := s.client.From(s.table).
			Select("id,url,title", "", false).
			Or(redirectorFilter, "").
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(offset, offset+pageSize-1, "").
			ExecuteWithContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("select repair candidates: %w", err)
		}

		var page []core.RepairCandidate
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decode repair candidates: %w", store.ErrInvalidResponse)
		}

		candidates = append(candidates, page...)
		if len(page) < pageSize {
			break
		}
	}

	s.logger.Debug("selected repair candidates", "count", len(candidates))
	return candidates, nil
}

// SetEmbedding updates only the embedding column of one row.
func (s *Store) SetEmbedding(ctx context.Context, id core.ID, vector []float32) error {
	return s.update(ctx, id, map[string]any{"embedding": vector})
}

// SetCanonicalURL updates only the url and source columns of one row.
func (s *Store) SetCanonicalURL(ctx context.Context, id core.ID, url, source string) error {
	return s.update(ctx, id, map[string]any{"url": url, "source": source})
}

func (s *Store) update(ctx context.Context, id core.ID, fields map[string]any) error {
	_, count, err := s.client.From(s.table).
		Update(fields, "minimal", "exact").
		Eq("id", strconv.FormatInt(int64(id), 10)).
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("update article %d: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("update article %d: %w", id, store.ErrNotFound)
	}
	return nil
}
