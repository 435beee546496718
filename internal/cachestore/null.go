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

package cachestore

import "context"

// NullStore discards everything. It is the default CACHE_STORE and the
// baseline every other variant is measured against.
type NullStore struct{}

func NewNullStore() *NullStore { return &NullStore{} }

func (*NullStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	return nil, false, nil
}

func (*NullStore) Put(ctx context.Context, key string, entry *Entry) error {
	return nil
}

func (*NullStore) Purge(ctx context.Context) error {
	return nil
}
