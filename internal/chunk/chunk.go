// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
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

// Package chunk implements the query-splitting executor: it turns one
// logical SELECT into a sequence of LIMIT/OFFSET shards issued
// sequentially to the backend, then reassembles them into a single
// sparql-results+json document.
package chunk

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/reika0717/sparql-proxy/internal/backend"
	"github.com/reika0717/sparql-proxy/internal/metrics"
	"github.com/reika0717/sparql-proxy/internal/sparql"
)

// jsonResultAccept is forced on every shard request regardless of the
// client's own Accept header, so the executor can parse and merge bindings.
const jsonResultAccept = "application/sparql-results+json"

// Config holds the split-policy knobs sourced from the environment:
// ENABLE_QUERY_SPLITTING, MAX_CHUNK_LIMIT, MAX_LIMIT.
type Config struct {
	Enabled       bool
	MaxChunkLimit int
	MaxLimit      int
}

type solutionPage struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []json.RawMessage `json:"bindings"`
	} `json:"results"`
}

// Execute runs q against client, splitting into shards when cfg enables
// splitting and q is a SELECT; otherwise it forwards the query verbatim.
func Execute(ctx context.Context, cfg Config, q *sparql.Query, client backend.Client) (*backend.Response, error) {
	if !cfg.Enabled || q.AST.Form != sparql.FormSelect {
		return client.Execute(ctx, q.Raw, q.Accept)
	}
	return executeSplit(ctx, cfg, q, client)
}

func executeSplit(ctx context.Context, cfg Config, q *sparql.Query, client backend.Client) (*backend.Response, error) {
	ast := q.AST

	userLimit := math.MaxInt
	if ast.Limit != nil {
		userLimit = *ast.Limit
	}
	effectiveLimit := min(userLimit, cfg.MaxLimit)

	chunkSize := cfg.MaxChunkLimit
	if effectiveLimit < chunkSize {
		chunkSize = effectiveLimit
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}

	offset := 0
	if ast.Offset != nil {
		offset = *ast.Offset
	}

	headVars := []string{}
	bindings := []json.RawMessage{}
	collected := 0
	haveHead := false

	for collected < effectiveLimit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		remaining := effectiveLimit - collected
		limit := min(chunkSize, remaining)

		shardAST := ast.Clone()
		shardAST.Limit = &limit
		shardAST.Offset = &offset

		text := sparql.Serialize(shardAST)
		if q.Preamble != "" {
			text = q.Preamble + " " + text
		}

		metrics.ShardsIssuedTotal.Inc()
		resp, err := client.Execute(ctx, text, jsonResultAccept)
		if err != nil {
			return nil, err
		}

		var page solutionPage
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, fmt.Errorf("chunk: decode shard response: %w", err)
		}

		if !haveHead {
			headVars = page.Head.Vars
			haveHead = true
		}
		bindings = append(bindings, page.Results.Bindings...)

		n := len(page.Results.Bindings)
		collected += n
		offset += limit

		if n < limit {
			break
		}
	}

	body, err := json.Marshal(map[string]any{
		"head": map[string]any{"vars": headVars},
		"results": map[string]any{
			"bindings": bindings,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chunk: encode merged result: %w", err)
	}

	return &backend.Response{ContentType: jsonResultAccept, Body: body}, nil
}
