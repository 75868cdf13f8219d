// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, plus the clients and adapters for the Google Cloud
// services the studio depends on (Storage, Pub/Sub, BigQuery, Vertex AI).
//
// This file centralizes all configuration-related structs, making it easy
// to understand and manage the application's configurable parameters.
//
// Structs:
//   - BigQueryDataSource: Configuration for the BigQuery run-history dataset.
//   - PromptTemplates: Holds the text templates for prompts sent to GenAI models.
//   - VertexAiLLMModel: Configuration for a Vertex AI Large Language Model (LLM).
//   - GenerationModel: Configuration for an image, video, music, or speech model.
//   - TopicSubscription: Configuration for a single Pub/Sub topic subscription.
//   - Storage: Configuration for Google Cloud Storage buckets.
//   - Assembly: Tuning knobs for the video-assembly pipeline.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings defines the default content safety thresholds for GenAI models.
// These settings are configured to be non-restrictive, allowing all content categories
// (Dangerous Content, Harassment, Hate Speech, Sexually Explicit) to pass through without
// being blocked. This is a common setup for internal or controlled environments where
// the input data is trusted.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// BigQueryDataSource represents the configuration for the run-history data source.
type BigQueryDataSource struct {
	DatasetName string `toml:"dataset"`   // The name of the BigQuery dataset.
	RunTable    string `toml:"run_table"` // The name of the table recording assembly runs.
}

// PromptTemplates holds the templates for different types of prompts.
type PromptTemplates struct {
	StoryPrompt string `toml:"story"` // The template for generating the marketing story.
	ImagePrompt string `toml:"image"` // The template for generating product image prompts.
	VideoPrompt string `toml:"video"` // The template for generating promotional video prompts.
}

// VertexAiLLMModel represents the configuration for a Vertex AI large language model (LLM).
type VertexAiLLMModel struct {
	Model              string  `toml:"model"`               // The name of the Vertex AI LLM.
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the LLM.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter for the LLM.
	TopP               float32 `toml:"top_p"`               // The top_p parameter for the LLM.
	TopK               float32 `toml:"top_k"`               // The top_k parameter for the LLM.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of tokens for the LLM output.
	OutputFormat       string  `toml:"output_format"`       // The desired output format for the LLM.
	EnableGoogle       bool    `toml:"enable_google"`       // Whether to enable Google Search for the LLM.
	RateLimit          int     `toml:"rate_limit"`          // The rate limit for the LLM in requests per second.
}

// GenerationModel represents the configuration for a media generation model
// (Imagen, Veo, Lyria, or Cloud TTS).
type GenerationModel struct {
	Model            string `toml:"model"`              // The model name or REST model id.
	SampleCount      int    `toml:"sample_count"`       // Number of candidates to request per call.
	AspectRatio      string `toml:"aspect_ratio"`       // Aspect ratio for image/video output.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // Upper bound for long-running generation.
	Voice            string `toml:"voice"`              // Voice name for speech synthesis models.
	RateLimit        int    `toml:"rate_limit"`         // The rate limit in requests per second.
}

// TopicSubscription represents the configuration for a Pub/Sub topic subscription.
type TopicSubscription struct {
	Name             string `toml:"name"`               // The name of the Pub/Sub subscription.
	DeadLetterTopic  string `toml:"dead_letter_topic"`  // The name of the dead-letter topic for the subscription.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // The timeout for the subscription in seconds.
}

// Storage represents the configuration for storage buckets.
type Storage struct {
	InputBucket  string `toml:"input_bucket"`  // The bucket holding uploaded source media.
	OutputBucket string `toml:"output_bucket"` // The bucket receiving generated collateral.
}

// Assembly holds the tuning knobs for the video-assembly pipeline.
type Assembly struct {
	TransitionType     string  `toml:"transition_type"`      // The xfade transition between clips.
	TransitionDuration float64 `toml:"transition_duration"`  // Crossfade length in seconds.
	TransitionOffset   float64 `toml:"transition_offset"`    // Offset into the leading clip in seconds.
	TimeoutInSeconds   int     `toml:"timeout_in_seconds"`   // Wall-clock bound for one assembly run.
	Keeps              bool    `toml:"keep_temporary_files"` // Retain intermediates for debugging.
}

// Config represents the overall configuration for the application, loaded from TOML files.
// It acts as the root container for all other configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name                      string `toml:"name"`                         // The name of the application.
		GoogleProjectId           string `toml:"google_project_id"`            // The Google Cloud project ID.
		GoogleLocation            string `toml:"location"`                     // The Google Cloud location.
		ThreadPoolSize            int    `toml:"thread_pool_size"`             // The size of the worker pool for parallel processing tasks.
		SignerServiceAccountEmail string `toml:"signer_service_account_email"` // The service account email used for signing GCS URLs.
	} `toml:"application"`
	Storage            Storage                      `toml:"storage"`               // Storage configuration.
	Assembly           Assembly                     `toml:"assembly"`              // Video-assembly pipeline configuration.
	BigQueryDataSource BigQueryDataSource           `toml:"big_query_data_source"` // BigQuery data source configuration.
	PromptTemplates    PromptTemplates              `toml:"prompt_templates"`      // Prompt templates configuration.
	TopicSubscriptions map[string]TopicSubscription `toml:"topic_subscriptions"`   // A map of Pub/Sub topic subscriptions, keyed by a logical name (e.g., "AssemblyTopic").
	AgentModels        map[string]VertexAiLLMModel  `toml:"agent_models"`          // A map of Vertex AI LLM models, keyed by a logical name (e.g., "creative-flash").
	GenerationModels   map[string]GenerationModel   `toml:"generation_models"`     // A map of media generation models, keyed by a logical name (e.g., "imagen", "veo").
}

// NewConfig is a constructor function that creates a new, initialized Config instance.
// It's important to initialize the maps within the struct to avoid nil pointer panics
// when the configuration loader tries to populate them.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map fields initialized.
func NewConfig() *Config {
	return &Config{
		TopicSubscriptions: make(map[string]TopicSubscription),
		AgentModels:        make(map[string]VertexAiLLMModel),
		GenerationModels:   make(map[string]GenerationModel),
	}
}
