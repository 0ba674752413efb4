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


// Package config loads job configuration from the environment.
// A .env file in the working directory is honored but never overrides
// variables already set in the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store holds the credentials for the article store.
type Store struct {
	// SupabaseURL is the project URL, e.g. https://xyz.supabase.co.
	SupabaseURL string

	// ServiceKey is the service-role key with row-update privilege on
	// the articles table.
	ServiceKey string

	// Table is the articles table name.
	Table string
}

// Embed extends Store with the embedding-provider credential.
type Embed struct {
	Store

	// OpenAIKey is the embedding provider credential.
	OpenAIKey string
}

// LoadStore builds the store configuration for jobs that only touch the
// article store.
func LoadStore() (*Store, error) {
	loadDotEnv()

	c := &Store{
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		ServiceKey:  os.Getenv("SUPABASE_SERVICE_KEY"),
		Table:       getEnv("LATEST_NEWS_TABLE", "latest_news"),
	}

	if c.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if c.ServiceKey == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}

	return c, nil
}

// LoadEmbed builds the configuration for the embedding backfill, which
// additionally needs the embedding provider credential.
func LoadEmbed() (*Embed, error) {
	st, err := LoadStore()
	if err != nil {
		return nil, err
	}

	c := &Embed{
		Store:     *st,
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
	}

	if c.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return c, nil
}

func loadDotEnv() {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
