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

package compressor

// Raw is the identity compressor: encode and decode are no-ops. It exists so
// callers can always go through the Compressor interface, even when no
// compression is configured.
type Raw struct{}

func (Raw) ID() string { return "raw" }

func (Raw) Encode(p []byte) ([]byte, error) { return p, nil }

func (Raw) Decode(p []byte) ([]byte, error) { return p, nil }
