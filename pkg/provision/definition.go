// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package provision

import "encoding/json"

// Field names Bedrock Knowledge Bases expect in the vector index.
const (
	VectorField   = "bedrock-knowledge-base-default-vector-devops"
	TextField     = "AMAZON_BEDROCK_TEXT_CHUNK"
	MetadataField = "AMAZON_BEDROCK_METADATA"

	VectorDimension = 1024
)

type indexDefinition struct {
	Settings settings `json:"settings"`
	Mappings mappings `json:"mappings"`
}

type settings struct {
	Index struct {
		KNN bool `json:"knn"`
	} `json:"index"`
}

type mappings struct {
	Properties map[string]field `json:"properties"`
}

type field struct {
	Type      string     `json:"type"`
	Dimension int        `json:"dimension,omitempty"`
	Method    *knnMethod `json:"method,omitempty"`
}

type knnMethod struct {
	Engine     string         `json:"engine"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// IndexDefinition returns the fixed index body: one FAISS/HNSW vector field
// and the two text fields Bedrock writes chunks and metadata to.
func IndexDefinition() []byte {
	def := indexDefinition{
		Mappings: mappings{
			Properties: map[string]field{
				VectorField: {
					Type:      "knn_vector",
					Dimension: VectorDimension,
					Method: &knnMethod{
						Engine:     "faiss",
						Name:       "hnsw",
						Parameters: map[string]any{},
					},
				},
				TextField:     {Type: "text"},
				MetadataField: {Type: "text"},
			},
		},
	}
	def.Settings.Index.KNN = true

	body, err := json.Marshal(def)
	if err != nil {
		// The definition is a constant; failing to encode it is a programming error.
		panic(err)
	}
	return body
}
